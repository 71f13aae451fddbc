// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventTrackStarted EventKind = iota + 1
	EventTrackPlaying
	EventTrackPaused
	EventTrackResumed
	EventTrackStopping
	EventTrackStopped
	EventTrackFailed
	EventVolumeChanged
	EventMasterVolumeChanged
	EventCommandIgnored
)

func (k EventKind) String() string {
	switch k {
	case EventTrackStarted:
		return "track-started"
	case EventTrackPlaying:
		return "track-playing"
	case EventTrackPaused:
		return "track-paused"
	case EventTrackResumed:
		return "track-resumed"
	case EventTrackStopping:
		return "track-stopping"
	case EventTrackStopped:
		return "track-stopped"
	case EventTrackFailed:
		return "track-failed"
	case EventVolumeChanged:
		return "volume-changed"
	case EventMasterVolumeChanged:
		return "master-volume-changed"
	case EventCommandIgnored:
		return "command-ignored"
	default:
		return "unknown"
	}
}

// Event is a notification from the audio goroutine. Err is set for
// EventTrackFailed and EventCommandIgnored.
type Event struct {
	Kind  EventKind
	Track string
	Level float32
	Err   error
}

func (e Event) String() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Track, e.Err)
	case e.Kind == EventVolumeChanged, e.Kind == EventMasterVolumeChanged:
		return fmt.Sprintf("%s %s %.2f", e.Kind, e.Track, e.Level)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Track)
	}
}

// emit never blocks. An event that does not fit is counted and dropped.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.dropped.Add(1)
	}
}

func (e *Engine) ignored(op Op, id string, err error) {
	e.emit(Event{
		Kind:  EventCommandIgnored,
		Track: id,
		Err:   &CommandError{Op: op, Track: id, Err: err},
	})
}
