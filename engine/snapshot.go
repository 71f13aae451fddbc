// SPDX-License-Identifier: EPL-2.0

package engine

// TrackStatus is the state of one handle at the end of a buffer.
type TrackStatus struct {
	ID     string
	State  State
	Gain   float32 // gain applied to the last frame
	Target float32
	Volume float32 // user level the track fades towards
	Frames int64   // frames mixed since the handle was created
	// Loading is true while the decoder is still being opened.
	Loading bool
}

type Stats struct {
	Active        int
	Playing       int
	Paused        int
	Loading       int
	Buffers       uint64
	DroppedEvents uint64
}

// Snapshot is an immutable view of the mix. A new one is published after
// every buffer, so all commands applied in that buffer are visible at once.
type Snapshot struct {
	Tracks       map[string]TrackStatus
	Order        []string // handles in the order they were started
	Volumes      map[string]float32
	Master       float32
	MasterTarget float32
	Stats        Stats
}

func (s *Snapshot) Track(id string) (TrackStatus, bool) {
	st, ok := s.Tracks[id]
	return st, ok
}

// Volume returns the level a track plays at, whether or not it is active.
func (s *Snapshot) Volume(id string, fallback float32) float32 {
	if v, ok := s.Volumes[id]; ok {
		return v
	}
	return fallback
}

// Active lists the ids of the tracks that are in the mix in start order.
func (s *Snapshot) Active() []string {
	return append([]string(nil), s.Order...)
}

func (e *Engine) publish() {
	tracks := make(map[string]TrackStatus, len(e.order))
	var st Stats

	for _, h := range e.order {
		status := TrackStatus{
			ID:      h.id,
			State:   h.state,
			Gain:    h.ramp.Current(),
			Target:  h.ramp.Target(),
			Volume:  h.volume,
			Frames:  h.frames,
			Loading: h.src == nil,
		}
		tracks[h.id] = status

		st.Active++
		switch {
		case status.Loading:
			st.Loading++
		case h.state == Paused:
			st.Paused++
		case h.state == Playing:
			st.Playing++
		}
	}

	if e.orderDirty {
		ids := make([]string, len(e.order))
		for i, h := range e.order {
			ids[i] = h.id
		}
		e.orderIDs = ids
		e.orderDirty = false
	}

	if e.volumesDirty {
		vols := make(map[string]float32, len(e.volumes))
		for id, v := range e.volumes {
			vols[id] = v
		}
		e.volumesView = vols
		e.volumesDirty = false
	}

	st.Buffers = e.buffers
	st.DroppedEvents = e.dropped.Load()

	e.snap.Store(&Snapshot{
		Tracks:       tracks,
		Order:        e.orderIDs,
		Volumes:      e.volumesView,
		Master:       e.master.Current(),
		MasterTarget: e.master.Target(),
		Stats:        st,
	})
}
