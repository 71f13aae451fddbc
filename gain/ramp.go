// SPDX-License-Identifier: EPL-2.0

package gain

// Ramp moves a gain value linearly from a start value to a target over a
// fixed number of frames. Retargeting in the middle of a fade restarts the
// interpolation from the value reached so far, never from the old start, so
// the output has no steps.
type Ramp struct {
	start   float32
	target  float32
	current float32

	elapsed  int
	duration int
}

// NewRamp returns a settled ramp at value with fades lasting duration frames.
func NewRamp(value float32, duration int) Ramp {
	return Ramp{
		start:    value,
		target:   value,
		current:  value,
		elapsed:  duration,
		duration: max(duration, 0),
	}
}

func (r *Ramp) Current() float32 { return r.current }
func (r *Ramp) Target() float32  { return r.target }
func (r *Ramp) Start() float32   { return r.start }
func (r *Ramp) Elapsed() int     { return r.elapsed }
func (r *Ramp) Duration() int    { return r.duration }

// Done reports whether the ramp has reached its target.
func (r *Ramp) Done() bool { return r.elapsed >= r.duration }

// Retarget begins a new fade from the current value to target.
func (r *Ramp) Retarget(target float32) {
	r.start = r.current
	r.target = target
	r.elapsed = 0
	if r.duration == 0 || r.start == r.target {
		r.settle()
	}
}

// Set jumps to value with no fade.
func (r *Ramp) Set(value float32) {
	r.start = value
	r.target = value
	r.current = value
	r.elapsed = r.duration
}

// Next advances one frame and returns the gain to apply to it.
func (r *Ramp) Next() float32 {
	if r.elapsed >= r.duration {
		return r.current
	}

	r.elapsed++
	if r.elapsed >= r.duration {
		r.settle()
		return r.current
	}

	t := float32(r.elapsed) / float32(r.duration)
	r.current = r.start + (r.target-r.start)*t
	return r.current
}

// Advance moves the ramp forward by frames without producing values.
func (r *Ramp) Advance(frames int) {
	if frames <= 0 || r.Done() {
		return
	}
	r.elapsed += frames
	if r.elapsed >= r.duration {
		r.settle()
		return
	}
	t := float32(r.elapsed) / float32(r.duration)
	r.current = r.start + (r.target-r.start)*t
}

// Apply multiplies interleaved buf frame by frame with the ramp.
func (r *Ramp) Apply(buf []float32, channels int) {
	if r.Done() {
		g := r.current
		if g == 1 {
			return
		}
		for i := range buf {
			buf[i] *= g
		}
		return
	}

	for f := 0; f+channels <= len(buf); f += channels {
		g := r.Next()
		for c := range channels {
			buf[f+c] *= g
		}
	}
}

// settle pins current to target exactly, so float error never accumulates.
func (r *Ramp) settle() {
	r.elapsed = r.duration
	r.current = r.target
}
