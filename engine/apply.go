// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/noisemix/gain"
	"github.com/ik5/noisemix/tracks"
)

func (e *Engine) apply(cmd Command) {
	switch cmd.Op {
	case OpPlay:
		e.play(cmd.Track)
	case OpStop:
		e.stop(cmd.Track)
	case OpPause:
		e.pause(cmd.Track)
	case OpResume:
		e.resume(cmd.Track)
	case OpSetVolume:
		e.setVolume(cmd.Track, cmd.Level)
	case OpSetMasterVolume:
		level := gain.Clamp01(cmd.Level)
		e.master.Retarget(level)
		e.emit(Event{Kind: EventMasterVolumeChanged, Level: level})
	case OpStopAll:
		for _, h := range e.order {
			if !h.removed {
				e.stop(h.id)
			}
		}
	case OpPauseAll:
		for _, h := range e.order {
			if !h.removed {
				e.pause(h.id)
			}
		}
	case OpResumeAll:
		for _, h := range e.order {
			if !h.removed {
				e.resume(h.id)
			}
		}
	case opLoaded:
		e.loaded(cmd.Track, cmd.load)
	}
}

func (e *Engine) volume(id string) float32 {
	if v, ok := e.volumes[id]; ok {
		return v
	}
	return e.cfg.DefaultVolume
}

func (e *Engine) play(id string) {
	key := tracks.NormalizeID(id)

	if h, ok := e.handles[key]; ok {
		switch h.state {
		case Starting, Playing:
			return
		case Paused, Pausing:
			h.state = Starting
			h.ramp.Retarget(h.volume)
			e.emit(Event{Kind: EventTrackResumed, Track: key, Level: h.volume})
		case Stopping:
			h.state = Starting
			h.ramp.Retarget(h.volume)
			e.emit(Event{Kind: EventTrackStarted, Track: key, Level: h.volume})
		}
		return
	}

	desc, ok := e.catalog.Lookup(key)
	if !ok {
		e.emit(Event{Kind: EventTrackFailed, Track: key, Err: ErrNotFound})
		return
	}

	if len(e.handles) >= e.cfg.MaxTracks {
		e.emit(Event{Kind: EventTrackFailed, Track: desc.ID, Err: ErrTooManyTracks})
		return
	}

	e.gen++
	h := &handle{
		id:     desc.ID,
		gen:    e.gen,
		ramp:   gain.NewRamp(0, e.cfg.FadeFrames()),
		state:  Starting,
		volume: e.volume(desc.ID),
	}
	h.ramp.Retarget(h.volume)

	e.handles[h.id] = h
	e.order = append(e.order, h)
	e.orderDirty = true

	e.pendingLoads = append(e.pendingLoads, loadRequest{id: h.id, gen: h.gen, desc: desc})
	e.emit(Event{Kind: EventTrackStarted, Track: h.id, Level: h.volume})
}

func (e *Engine) stop(id string) {
	key := tracks.NormalizeID(id)

	h, ok := e.handles[key]
	if !ok {
		if _, known := e.catalog.Lookup(key); !known {
			e.ignored(OpStop, key, ErrUnknownTrack)
		}
		return
	}

	switch {
	case h.state == Stopping:
		return
	case h.src == nil, h.state == Paused:
		// nothing audible to fade
		e.remove(h)
		e.emit(Event{Kind: EventTrackStopped, Track: key})
	default:
		h.state = Stopping
		h.ramp.Retarget(0)
		e.emit(Event{Kind: EventTrackStopping, Track: key})
	}
}

func (e *Engine) pause(id string) {
	key := tracks.NormalizeID(id)

	h, ok := e.handles[key]
	if !ok {
		if _, known := e.catalog.Lookup(key); !known {
			e.ignored(OpPause, key, ErrUnknownTrack)
		}
		return
	}

	switch h.state {
	case Starting, Playing:
		if h.src == nil {
			h.ramp.Set(0)
			h.state = Paused
			e.emit(Event{Kind: EventTrackPaused, Track: key})
			return
		}
		h.state = Pausing
		h.ramp.Retarget(0)
	}
}

func (e *Engine) resume(id string) {
	key := tracks.NormalizeID(id)

	h, ok := e.handles[key]
	if !ok {
		if _, known := e.catalog.Lookup(key); !known {
			e.ignored(OpResume, key, ErrUnknownTrack)
		}
		return
	}

	switch h.state {
	case Paused, Pausing:
		h.state = Starting
		h.ramp.Retarget(h.volume)
		e.emit(Event{Kind: EventTrackResumed, Track: key, Level: h.volume})
	}
}

func (e *Engine) setVolume(id string, level float32) {
	key := tracks.NormalizeID(id)
	level = gain.Clamp01(level)

	h, active := e.handles[key]
	if !active {
		if _, known := e.catalog.Lookup(key); !known {
			e.ignored(OpSetVolume, key, ErrUnknownTrack)
			return
		}
	}

	e.volumes[key] = level
	e.volumesDirty = true

	if active {
		h.volume = level
		if h.state == Starting || h.state == Playing {
			h.ramp.Retarget(level)
		}
	}

	e.emit(Event{Kind: EventVolumeChanged, Track: key, Level: level})
}

// loaded installs a decoder from the loader, unless the handle it was
// opened for is gone or has been replaced since.
func (e *Engine) loaded(id string, res *loadResult) {
	if res == nil {
		return
	}

	h, ok := e.handles[id]
	if !ok || h.gen != res.gen || h.src != nil {
		if res.src != nil {
			_ = res.src.Close()
		}
		return
	}

	if res.err != nil {
		e.fail(h, res.err)
		return
	}

	h.src = res.src
}
