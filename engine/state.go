// SPDX-License-Identifier: EPL-2.0

package engine

// State is the playback state of one track.
type State int

const (
	Stopped State = iota
	// Starting covers both waiting for the decoder and the fade in.
	Starting
	Playing
	Pausing
	Paused
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Pausing:
		return "pausing"
	case Paused:
		return "paused"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Audible reports whether a track in this state contributes to the mix.
func (s State) Audible() bool {
	return s == Starting || s == Playing || s == Pausing || s == Stopping
}
