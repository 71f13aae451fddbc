// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/gain"
)

// maxStalls bounds how many empty reads fill accepts before it gives up on
// a buffer and pads it with silence.
const maxStalls = 8

// handle is one track in the mix. Only the audio goroutine touches it.
type handle struct {
	id  string
	gen uint64

	// src is nil until the loader delivers it.
	src    audio.Source
	ramp   gain.Ramp
	state  State
	volume float32
	frames int64

	removed bool
}

// fill reads from the handle's source until buf is full. Whatever a failing
// or exhausted source leaves unwritten is silence.
func (h *handle) fill(buf []float32) error {
	filled, stalls := 0, 0
	for filled < len(buf) {
		n, err := h.src.ReadSamples(buf[filled:])
		filled += n
		if err != nil {
			clear(buf[filled:])
			return err
		}
		if n > 0 {
			stalls = 0
			continue
		}
		stalls++
		if stalls >= maxStalls {
			clear(buf[filled:])
			return nil
		}
	}
	return nil
}

// mix adds frames of buf, scaled by the ramp, into out.
func (h *handle) mix(out, buf []float32, channels int) {
	frames := len(out) / channels

	if h.ramp.Done() {
		g := h.ramp.Current()
		if g == 0 {
			return
		}
		for i := range frames * channels {
			out[i] += buf[i] * g
		}
		return
	}

	for f := range frames {
		g := h.ramp.Next()
		base := f * channels
		for c := range channels {
			out[base+c] += buf[base+c] * g
		}
	}
}

func (h *handle) release() {
	if h.src != nil {
		_ = h.src.Close()
		h.src = nil
	}
	h.removed = true
}
