// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/ik5/noisemix/audio"
)

// Beep plays through the faiface/beep speaker. beep works in stereo
// float64 frames; a mono source is sent to both sides.
type Beep struct {
	rate beep.SampleRate

	mu      sync.Mutex
	started bool
}

func NewBeep(rate, channels, bufferFrames int) (*Beep, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: beep plays mono or stereo, got %d channels", ErrFormatChange, channels)
	}

	sr := beep.SampleRate(rate)
	if err := speaker.Init(sr, bufferFrames); err != nil {
		return nil, fmt.Errorf("opening speaker: %w", err)
	}

	return &Beep{rate: sr}, nil
}

func (b *Beep) Start(src audio.Source) error {
	if ch := src.Channels(); ch < 1 || ch > 2 {
		return fmt.Errorf("%w: beep plays mono or stereo, got %d channels", ErrFormatChange, ch)
	}
	if src.SampleRate() != int(b.rate) {
		return fmt.Errorf("%w: %d Hz, speaker %d Hz", ErrFormatChange, src.SampleRate(), int(b.rate))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return ErrStarted
	}
	b.started = true

	speaker.Play(Streamer(src))
	return nil
}

func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	speaker.Clear()
	speaker.Close()
	b.started = false
	return nil
}

// Streamer adapts a mono or stereo source to beep. The streamer ends when
// the source returns an error.
func Streamer(src audio.Source) beep.Streamer {
	ch := src.Channels()
	var buf []float32

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		want := len(samples) * ch
		if cap(buf) < want {
			buf = make([]float32, want)
		}
		buf = buf[:want]

		n, err := src.ReadSamples(buf)
		frames := n / ch
		for i := range frames {
			l := float64(buf[i*ch])
			r := l
			if ch == 2 {
				r = float64(buf[i*ch+1])
			}
			samples[i] = [2]float64{l, r}
		}

		if err != nil {
			return frames, frames > 0
		}
		return frames, true
	})
}
