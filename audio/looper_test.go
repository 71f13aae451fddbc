// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

// Reading a looped stream in any buffer size must give the same samples as
// the data repeated end to end.
func TestLooper_BoundaryIsContiguous(t *testing.T) {
	t.Parallel()

	data := pattern(50)

	for _, bufLen := range []int{1, 3, 7, 49, 50, 51, 128} {
		dec := &byteDecoder{rate: 8000, channels: 1, chunk: 6}
		l, err := NewLooper("raw", dec, data)
		if err != nil {
			t.Fatal(err)
		}

		total := 0
		buf := make([]float32, bufLen)
		for total < 400 {
			n, err := l.ReadSamples(buf)
			if err != nil {
				t.Fatalf("buf %d: ReadSamples() error = %v", bufLen, err)
			}
			if n != bufLen {
				t.Fatalf("buf %d: ReadSamples() = %d, want a full buffer", bufLen, n)
			}
			for i, v := range buf {
				want := sampleOf(data[(total+i)%len(data)])
				if v != want {
					t.Fatalf("buf %d: sample %d = %v, want %v", bufLen, total+i, v, want)
				}
			}
			total += n
		}

		// the wrap happens on the read after the last sample
		loops := (total - 1) / len(data)
		if got := l.Loops(); got != loops {
			t.Errorf("buf %d: Loops() = %d, want %d", bufLen, got, loops)
		}
		if got, want := l.Position(), int64(total-loops*len(data)); got != want {
			t.Errorf("buf %d: Position() = %d, want %d", bufLen, got, want)
		}
	}
}

func TestLooper_Stereo(t *testing.T) {
	t.Parallel()

	data := pattern(10) // 5 frames
	l, err := NewLooper("raw", &byteDecoder{rate: 8000, channels: 2, chunk: 4}, data)
	if err != nil {
		t.Fatal(err)
	}
	if l.Channels() != 2 || l.SampleRate() != 8000 || l.Format() != "raw" {
		t.Fatalf("layout = %d ch %d Hz %q", l.Channels(), l.SampleRate(), l.Format())
	}

	buf := make([]float32, 14)
	if _, err := l.ReadSamples(buf); err != nil {
		t.Fatal(err)
	}
	for i, v := range buf {
		if want := sampleOf(data[i%10]); v != want {
			t.Errorf("sample %d = %v, want %v", i, v, want)
		}
	}

	if _, err := l.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd buffer error = %v", err)
	}
}

func TestLooper_Reset(t *testing.T) {
	t.Parallel()

	data := pattern(20)
	l, err := NewLooper("raw", &byteDecoder{rate: 8000, channels: 1}, data)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 30)
	if _, err := l.ReadSamples(buf); err != nil {
		t.Fatal(err)
	}
	if err := l.Reset(); err != nil {
		t.Fatal(err)
	}
	if l.Position() != 0 || l.Loops() != 0 {
		t.Fatalf("after Reset: position %d loops %d", l.Position(), l.Loops())
	}

	if _, err := l.ReadSamples(buf[:1]); err != nil {
		t.Fatal(err)
	}
	if buf[0] != sampleOf(data[0]) {
		t.Errorf("first sample after Reset = %v", buf[0])
	}
}

func TestLooper_Errors(t *testing.T) {
	t.Parallel()

	t.Run("decode fails", func(t *testing.T) {
		t.Parallel()
		_, err := NewLooper("raw", &byteDecoder{rate: 8000, channels: 1, fail: errBroken}, pattern(4))
		if !errors.Is(err, ErrCorrupt) || !errors.Is(err, errBroken) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("bad layout", func(t *testing.T) {
		t.Parallel()
		_, err := NewLooper("raw", &byteDecoder{rate: 8000}, pattern(4))
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("empty stream", func(t *testing.T) {
		t.Parallel()
		l, err := NewLooper("raw", &byteDecoder{rate: 8000, channels: 1}, nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = l.ReadSamples(make([]float32, 8))
		if !errors.Is(err, ErrEmptySource) || !errors.Is(err, ErrCorrupt) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("read fails", func(t *testing.T) {
		t.Parallel()
		l, err := NewLooper("raw", &brokenDecoder{byteDecoder{rate: 8000, channels: 1}}, pattern(4))
		if err != nil {
			t.Fatal(err)
		}
		_, err = l.ReadSamples(make([]float32, 8))
		var de *DecodeError
		if !errors.As(err, &de) || de.Kind != Corrupt || !errors.Is(err, errBroken) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("decoder stalls", func(t *testing.T) {
		t.Parallel()
		l, err := NewLooper("raw", &stallDecoder{byteDecoder{rate: 8000, channels: 1}}, pattern(4))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := l.ReadSamples(make([]float32, 8)); !errors.Is(err, ErrEmptySource) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		l, err := NewLooper("raw", &byteDecoder{rate: 8000, channels: 1}, pattern(4))
		if err != nil {
			t.Fatal(err)
		}
		if err := l.Close(); err != nil {
			t.Fatal(err)
		}
		if err := l.Close(); err != nil {
			t.Errorf("second Close() = %v", err)
		}
		if _, err := l.ReadSamples(make([]float32, 8)); !errors.Is(err, ErrCorrupt) {
			t.Errorf("read after close error = %v", err)
		}
	})
}
