// SPDX-License-Identifier: EPL-2.0

package engine

// Op is the kind of a Command.
type Op int

const (
	OpPlay Op = iota + 1
	OpStop
	OpPause
	OpResume
	OpSetVolume
	OpSetMasterVolume
	OpStopAll
	OpPauseAll
	OpResumeAll

	// opLoaded carries a decoder back from the loader.
	opLoaded
)

func (o Op) String() string {
	switch o {
	case OpPlay:
		return "play"
	case OpStop:
		return "stop"
	case OpPause:
		return "pause"
	case OpResume:
		return "resume"
	case OpSetVolume:
		return "set-volume"
	case OpSetMasterVolume:
		return "set-master-volume"
	case OpStopAll:
		return "stop-all"
	case OpPauseAll:
		return "pause-all"
	case OpResumeAll:
		return "resume-all"
	case opLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Command is one user intent. Commands are applied by the audio goroutine in
// the order they were submitted.
type Command struct {
	Op    Op
	Track string
	Level float32

	load *loadResult
}

func Play(id string) Command   { return Command{Op: OpPlay, Track: id} }
func Stop(id string) Command   { return Command{Op: OpStop, Track: id} }
func Pause(id string) Command  { return Command{Op: OpPause, Track: id} }
func Resume(id string) Command { return Command{Op: OpResume, Track: id} }

func SetVolume(id string, level float32) Command {
	return Command{Op: OpSetVolume, Track: id, Level: level}
}

func SetMasterVolume(level float32) Command {
	return Command{Op: OpSetMasterVolume, Level: level}
}

func StopAll() Command   { return Command{Op: OpStopAll} }
func PauseAll() Command  { return Command{Op: OpPauseAll} }
func ResumeAll() Command { return Command{Op: OpResumeAll} }
