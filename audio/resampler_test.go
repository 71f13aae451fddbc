// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/noisemix/internal/audiotest"
)

// drain reads src until it ends and returns everything it produced.
func drain(t *testing.T, src Source, bufLen int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufLen)
	for range 100000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("source never ended")
	return nil
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		channels int
	}{
		{"same rate", 8000, 8000, 1000, 1},
		{"2x up", 8000, 16000, 1000, 1},
		{"2x down", 16000, 8000, 1000, 2},
		{"44.1k to 48k", 44100, 48000, 4410, 2},
		{"48k to 22.05k", 48000, 22050, 4800, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.NewSineSource(tt.from, tt.channels, tt.frames, 100), tt.to)
			if r.SampleRate() != tt.to || r.Channels() != tt.channels {
				t.Fatalf("layout = %d Hz %d ch", r.SampleRate(), r.Channels())
			}

			out := drain(t, r, 256*tt.channels)
			if len(out)%tt.channels != 0 {
				t.Fatalf("got %d samples, not whole frames", len(out))
			}

			want := float64(tt.frames) * float64(tt.to) / float64(tt.from)
			got := float64(len(out) / tt.channels)
			if math.Abs(got-want) > 3 {
				t.Errorf("got %v frames, want about %v", got, want)
			}
		})
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	for _, to := range []int{4000, 11025, 32000} {
		r := NewResampler(audiotest.NewConstantSource(16000, 2, 1600, 0.5), to)
		for i, v := range drain(t, r, 64) {
			if math.Abs(float64(v-0.5)) > 1e-4 {
				t.Fatalf("%d Hz: sample %d = %v", to, i, v)
			}
		}
	}
}

func TestResampler_FollowsRamp(t *testing.T) {
	t.Parallel()

	// a straight line survives cubic interpolation exactly
	r := NewResampler(audiotest.NewRampSource(1000, 1, 100), 4000)
	out := drain(t, r, 32)

	for i, v := range out[4 : len(out)-8] {
		want := float32(i+4) / 4
		if math.Abs(float64(v-want)) > 1e-3 {
			t.Fatalf("frame %d = %v, want %v", i+4, v, want)
		}
	}
}

func TestResampler_SmallReads(t *testing.T) {
	t.Parallel()

	whole := drain(t, NewResampler(audiotest.NewSineSource(44100, 2, 2000, 440), 16000), 4096)
	bits := drain(t, NewResampler(audiotest.NewSineSource(44100, 2, 2000, 440), 16000), 2)

	if len(whole) != len(bits) {
		t.Fatalf("lengths differ: %d vs %d", len(whole), len(bits))
	}
	for i := range whole {
		if whole[i] != bits[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, whole[i], bits[i])
		}
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd buffer error = %v", err)
	}

	empty := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	if n, err := empty.ReadSamples(make([]float32, 8)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("empty source = %d, %v", n, err)
	}

	src := audiotest.NewConstantSource(8000, 1, audiotest.Endless, 0.1).FailAfter(2000, errBroken)
	broken := NewResampler(src, 16000)
	buf := make([]float32, 512)
	var err error
	for range 100 {
		if _, err = broken.ReadSamples(buf); err != nil {
			break
		}
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("source error = %v", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatal(err)
	}
	if src.Closes() != 1 {
		t.Errorf("source closed %d times", src.Closes())
	}
}

func TestResampler_Allocs(t *testing.T) {
	r := NewResampler(audiotest.NewSineSource(44100, 2, audiotest.Endless, 440), 48000)
	buf := make([]float32, 1024)
	_, _ = r.ReadSamples(buf)

	allocs := testing.AllocsPerRun(50, func() {
		_, _ = r.ReadSamples(buf)
	})
	if allocs > 0 {
		t.Errorf("ReadSamples allocates %v times per call", allocs)
	}
}
