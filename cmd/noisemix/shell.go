// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/noisemix/engine"
	"github.com/ik5/noisemix/gain"
	"github.com/ik5/noisemix/meter"
	"github.com/ik5/noisemix/tracks"
)

var (
	errUsage    = errors.New("usage")
	errBadLevel = errors.New("invalid level")
)

// controller is the part of noisemix.Player the shell drives.
type controller interface {
	Play(id string) error
	Stop(id string) error
	Pause(id string) error
	Resume(id string) error
	SetVolume(id string, level float32) error
	SetMasterVolume(level float32) error
	StopAll() error
	PauseAll() error
	ResumeAll() error
	Snapshot() *engine.Snapshot
	Tracks() []tracks.Descriptor
	Rescan() error
}

type shell struct {
	ctl controller
	out io.Writer

	// tap reads the last output buffer for levels; nil disables it.
	tap      func([]float32) int
	channels int
	rate     int
	meter    *meter.Meter
}

func newShell(ctl controller, out io.Writer) *shell {
	return &shell{ctl: ctl, out: out}
}

const helpText = `commands:
  play <id>...          start tracks
  stop <id>...          fade tracks out
  pause <id>...         fade out and hold position
  resume <id>...        continue paused tracks
  vol <id> <level>      level as 0-1, 0%-100% or -12db (bare numbers are 0-1)
  master <level>        master level
  stopall | pauseall | resumeall
  status                active tracks
  levels                output meter
  list                  available sounds
  rescan                scan sound directories again
  quit`

// exec runs one shell line. quit is true when the shell should exit.
func (s *shell) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "play":
		return false, s.each(args, s.ctl.Play)
	case "stop":
		return false, s.each(args, s.ctl.Stop)
	case "pause":
		return false, s.each(args, s.ctl.Pause)
	case "resume":
		return false, s.each(args, s.ctl.Resume)
	case "vol", "volume":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: vol <id> <level>", errUsage)
		}
		level, err := parseLevel(args[1])
		if err != nil {
			return false, err
		}
		return false, s.ctl.SetVolume(args[0], level)
	case "master":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: master <level>", errUsage)
		}
		level, err := parseLevel(args[0])
		if err != nil {
			return false, err
		}
		return false, s.ctl.SetMasterVolume(level)
	case "stopall":
		return false, s.ctl.StopAll()
	case "pauseall":
		return false, s.ctl.PauseAll()
	case "resumeall":
		return false, s.ctl.ResumeAll()
	case "status":
		s.status()
	case "levels":
		s.levels()
	case "list":
		s.list()
	case "rescan":
		err := s.ctl.Rescan()
		fmt.Fprintf(s.out, "%d sounds\n", len(s.ctl.Tracks()))
		return false, err
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

func (s *shell) each(ids []string, fn func(string) error) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: missing track id", errUsage)
	}
	var errs []error
	for _, id := range ids {
		errs = append(errs, fn(id))
	}
	return errors.Join(errs...)
}

func (s *shell) status() {
	snap := s.ctl.Snapshot()
	if len(snap.Order) == 0 {
		fmt.Fprintln(s.out, "nothing playing")
	}
	for _, id := range snap.Order {
		st := snap.Tracks[id]
		state := st.State.String()
		if st.Loading {
			state = "loading"
		}
		fmt.Fprintf(s.out, "%-20s %-9s %3.0f%% (%s)\n", id, state, st.Volume*100, gain.Label(st.Volume))
	}
	fmt.Fprintf(s.out, "master %3.0f%%, %d active, %d buffers", snap.MasterTarget*100, snap.Stats.Active, snap.Stats.Buffers)
	if snap.Stats.DroppedEvents > 0 {
		fmt.Fprintf(s.out, ", %d events dropped", snap.Stats.DroppedEvents)
	}
	fmt.Fprintln(s.out)
}

func (s *shell) levels() {
	if s.tap == nil {
		fmt.Fprintln(s.out, "no output to measure")
		return
	}
	if s.meter == nil {
		s.meter = meter.New(s.rate, 1024, 8)
	}

	buf := make([]float32, 1024*s.channels)
	n := s.tap(buf)
	lv := s.meter.Measure(buf[:n], s.channels)

	fmt.Fprintf(s.out, "rms  %s %6.1f dB\n", meter.Bar(lv.RMSDB, 30), lv.RMSDB)
	fmt.Fprintf(s.out, "peak %s %6.1f dB\n", meter.Bar(lv.PeakDB, 30), lv.PeakDB)

	edges := s.meter.Edges()
	for b, db := range lv.Bands {
		fmt.Fprintf(s.out, "%5.0f Hz %s\n", edges[b], meter.Bar(db, 30))
	}
}

func (s *shell) list() {
	for _, d := range s.ctl.Tracks() {
		fmt.Fprintf(s.out, "%-20s %s\n", d.ID, d.Category)
	}
}

// parseLevel accepts a linear 0.5, 50% and -6db. Bare numbers are always
// linear and clamp to [0, 1] like the engine does.
func parseLevel(s string) (float32, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasSuffix(s, "db"):
		db, err := strconv.ParseFloat(strings.TrimSuffix(s, "db"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errBadLevel, s)
		}
		return gain.DBToLinear(db), nil
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errBadLevel, s)
		}
		return gain.Clamp01(float32(pct / 100)), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadLevel, s)
	}
	return gain.Clamp01(float32(v)), nil
}

// parseDuration accepts Go durations and bare milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
