// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	samples := []int16{1, -1, 32767, -32768}
	if err := WriteWAV16(&buf, 44100, 2, samples); err != nil {
		t.Fatal(err)
	}

	b := buf.Bytes()
	if len(b) != headerSize+len(samples)*2 {
		t.Fatalf("file is %d bytes", len(b))
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", le.Uint32(b[4:]), uint32(36 + len(samples)*2)},
		{"fmt size", le.Uint32(b[16:]), 16},
		{"format", uint32(le.Uint16(b[20:])), wavFormatPCM},
		{"channels", uint32(le.Uint16(b[22:])), 2},
		{"rate", le.Uint32(b[24:]), 44100},
		{"byte rate", le.Uint32(b[28:]), 44100 * 4},
		{"block align", uint32(le.Uint16(b[32:])), 4},
		{"bits", uint32(le.Uint16(b[34:])), 16},
		{"data size", le.Uint32(b[40:]), uint32(len(samples) * 2)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	for tag, off := range map[string]int{"RIFF": 0, "WAVE": 8, "fmt ": 12, "data": 36} {
		if string(b[off:off+4]) != tag {
			t.Errorf("tag at %d = %q, want %q", off, b[off:off+4], tag)
		}
	}

	for i, s := range samples {
		if got := int16(le.Uint16(b[headerSize+2*i:])); got != s {
			t.Errorf("sample %d = %d, want %d", i, got, s)
		}
	}
}

func TestWriteWAV16_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 2, []int16{1, 2, 3}); !errors.Is(err, ErrSampleCountMismatch) {
		t.Errorf("odd samples error = %v", err)
	}
	if err := WriteWAV16(&buf, 8000, 0, nil); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("zero channels error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}

	errFull := errors.New("disk full")
	for _, limit := range []int{10, headerSize + 100} {
		w := &limitWriter{limit: limit, err: errFull}
		if err := WriteWAV16(w, 8000, 1, make([]int16, 20000)); !errors.Is(err, errFull) {
			t.Errorf("limit %d: error = %v", limit, err)
		}
	}
}

func TestWriteWAV16_Chunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20001)
	for i := range samples {
		samples[i] = int16(i)
	}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, samples); err != nil {
		t.Fatal(err)
	}

	b := buf.Bytes()[headerSize:]
	for _, i := range []int{0, 8191, 8192, 16384, 20000} {
		if got := int16(binary.LittleEndian.Uint16(b[2*i:])); got != samples[i] {
			t.Errorf("sample %d = %d", i, got)
		}
	}
}

// limitWriter fails once more than limit bytes were written.
type limitWriter struct {
	n, limit int
	err      error
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, w.err
	}
	w.n += len(p)
	return len(p), nil
}
