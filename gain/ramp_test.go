// SPDX-License-Identifier: EPL-2.0

package gain

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-6 }

func TestRamp_LinearFade(t *testing.T) {
	t.Parallel()

	r := NewRamp(0, 4)
	if !r.Done() || r.Current() != 0 {
		t.Fatal("new ramp is not settled")
	}

	r.Retarget(1)
	want := []float32{0.25, 0.5, 0.75, 1, 1, 1}
	for i, w := range want {
		if got := r.Next(); !near(got, w) {
			t.Errorf("frame %d = %v, want %v", i, got, w)
		}
	}
	if !r.Done() || r.Current() != 1 {
		t.Errorf("ramp did not settle exactly: %v", r.Current())
	}
}

func TestRamp_RetargetMidFade(t *testing.T) {
	t.Parallel()

	r := NewRamp(0, 10)
	r.Retarget(1)
	for range 4 {
		r.Next()
	}
	if !near(r.Current(), 0.4) {
		t.Fatalf("current = %v", r.Current())
	}

	// reverse: starts from where it is, not from the old start
	r.Retarget(0)
	if r.Start() != r.Current() || r.Elapsed() != 0 {
		t.Fatalf("start %v elapsed %d", r.Start(), r.Elapsed())
	}

	prev := r.Current()
	for range 10 {
		g := r.Next()
		if g > prev || prev-g > 0.04+1e-6 {
			t.Fatalf("step from %v to %v", prev, g)
		}
		prev = g
	}
	if r.Current() != 0 || !r.Done() {
		t.Errorf("ended at %v", r.Current())
	}
}

func TestRamp_Instant(t *testing.T) {
	t.Parallel()

	r := NewRamp(1, 0)
	r.Retarget(0.5)
	if !r.Done() || r.Current() != 0.5 {
		t.Errorf("zero length ramp = %v done %v", r.Current(), r.Done())
	}

	r = NewRamp(0.3, 100)
	r.Retarget(0.3)
	if !r.Done() {
		t.Error("retarget to the same value started a fade")
	}

	r.Retarget(1)
	r.Set(0.7)
	if !r.Done() || r.Current() != 0.7 || r.Target() != 0.7 {
		t.Errorf("Set = %v target %v", r.Current(), r.Target())
	}
}

func TestRamp_Advance(t *testing.T) {
	t.Parallel()

	stepped := NewRamp(0, 8)
	jumped := NewRamp(0, 8)
	stepped.Retarget(1)
	jumped.Retarget(1)

	for range 3 {
		stepped.Next()
	}
	jumped.Advance(3)
	if !near(stepped.Current(), jumped.Current()) {
		t.Errorf("Advance = %v, Next x3 = %v", jumped.Current(), stepped.Current())
	}

	jumped.Advance(100)
	if !jumped.Done() || jumped.Current() != 1 {
		t.Errorf("overshoot = %v", jumped.Current())
	}
	jumped.Advance(-1)
	if jumped.Current() != 1 {
		t.Error("negative advance moved the ramp")
	}
}

func TestRamp_Apply(t *testing.T) {
	t.Parallel()

	r := NewRamp(0, 2)
	r.Retarget(1)

	buf := []float32{1, 1, 1, 1, 1, 1} // three stereo frames
	r.Apply(buf, 2)
	want := []float32{0.5, 0.5, 1, 1, 1, 1}
	for i := range want {
		if !near(buf[i], want[i]) {
			t.Errorf("buf = %v, want %v", buf, want)
			break
		}
	}

	r.Set(0.5)
	buf = []float32{1, -1, 0.5}
	r.Apply(buf, 1)
	if buf[0] != 0.5 || buf[1] != -0.5 || buf[2] != 0.25 {
		t.Errorf("settled apply = %v", buf)
	}
}
