// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("track not found")
	ErrTooManyTracks = errors.New("too many tracks playing")
	ErrUnknownTrack  = errors.New("unknown track")
	ErrInvalidOp     = errors.New("invalid command")
	ErrClosed        = errors.New("engine closed")
)

// CommandError describes a command the engine ignored. It is informational:
// the UI and the engine can briefly disagree about which tracks exist.
type CommandError struct {
	Op    Op
	Track string
	Err   error
}

func (e *CommandError) Error() string {
	if e.Track == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Track, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
