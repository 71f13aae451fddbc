// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func encode(t *testing.T, rate, bitDepth, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := aiff.NewEncoder(f, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		channels int
		data     []int
		want     []float32
	}{
		{"16-bit mono", 16, 1, []int{0, 16384, -16384, -32768}, []float32{0, 0.5, -0.5, -1}},
		{"24-bit stereo", 24, 2, []int{4194304, -4194304, 0, 2097152}, []float32{0.5, -0.5, 0, 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := encode(t, 32000, tt.bitDepth, tt.channels, tt.data)

			// plain reader: the decoder buffers it to get a seeker
			src, err := Decoder{}.Decode(struct{ io.Reader }{bytes.NewReader(file)})
			if err != nil {
				t.Fatal(err)
			}
			defer src.Close()

			if src.SampleRate() != 32000 || src.Channels() != tt.channels {
				t.Fatalf("layout = %d Hz %d ch", src.SampleRate(), src.Channels())
			}

			var got []float32
			buf := make([]float32, 2*tt.channels)
			for range 100 {
				n, err := src.ReadSamples(buf)
				got = append(got, buf[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatal(err)
				}
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(nil); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("nil reader error = %v", err)
	}
	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("FORM....WAVE not aiff"))); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("garbage error = %v", err)
	}
}
