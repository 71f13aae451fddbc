// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/noisemix/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	// Window of 4 frames for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Fractional position between frames[1] and frames[2]
	pos float64

	// Chunk read from the source; frames are consumed from srcIdx.
	srcBuf []float32
	srcLen int
	srcIdx int
	eof    bool

	// One-pole low-pass state, only used when downsampling
	filterState []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		filterAlpha = 0.5
	}

	chunk := 1024 * channels

	r := &Resampler{
		src:         src,
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, chunk),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame copies the next source frame into dst. It returns false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	stalls := 0
	for r.srcIdx >= r.srcLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcLen = n - n%r.channels
		r.srcIdx = 0

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%w", err)
			}
			r.eof = true
		}

		if n == 0 && !r.eof {
			stalls++
			if stalls >= maxStalls {
				r.eof = true
			}
		}
	}

	copy(dst, r.srcBuf[r.srcIdx:r.srcIdx+r.channels])
	r.srcIdx += r.channels

	if r.useFilter {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	if r.useFilter {
		// start the filter from the first sample to avoid a warm-up transient
		copy(r.filterState, r.frames[1])
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.frames[i], r.frames[i-1])
		}
		r.hasFrame[i] = ok
	}

	r.primed = true
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[3], r.frames[2])
	}
	r.hasFrame[3] = ok
	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// frames[1] is the last real frame: the tail has been played out
		if !r.hasFrame[1] || (!r.hasFrame[2] && r.pos > 0) {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
