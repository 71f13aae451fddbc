// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/noisemix/gain"
	"github.com/ik5/noisemix/tracks"
)

const (
	DefaultSampleRate   = 48000
	DefaultChannels     = 2
	DefaultBufferFrames = 1024
	DefaultFade         = 300 * time.Millisecond
	DefaultMaxTracks    = 16
	DefaultEventBuffer  = 64
)

// Catalog resolves track ids. *tracks.Registry and *tracks.Catalog both
// satisfy it. Lookup is called from the audio goroutine and must not block.
type Catalog interface {
	Lookup(id string) (tracks.Descriptor, bool)
}

type Config struct {
	SampleRate   int
	Channels     int
	BufferFrames int
	// Fade is the length of every gain change, in and out.
	Fade      time.Duration
	MaxTracks int
	// MasterVolume is the starting master level. It is applied without a fade.
	MasterVolume float32
	// DefaultVolume is the level of a track that was never given one.
	DefaultVolume float32
	EventBuffer   int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:    DefaultSampleRate,
		Channels:      DefaultChannels,
		BufferFrames:  DefaultBufferFrames,
		Fade:          DefaultFade,
		MaxTracks:     DefaultMaxTracks,
		MasterVolume:  1,
		DefaultVolume: 1,
		EventBuffer:   DefaultEventBuffer,
	}
}

// Normalized fills in defaults and clamps volumes.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.Channels <= 0 {
		c.Channels = d.Channels
	}
	if c.BufferFrames <= 0 {
		c.BufferFrames = d.BufferFrames
	}
	if c.Fade < 0 {
		c.Fade = 0
	}
	if c.MaxTracks <= 0 {
		c.MaxTracks = d.MaxTracks
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = d.EventBuffer
	}
	c.MasterVolume = gain.Clamp01(c.MasterVolume)
	c.DefaultVolume = gain.Clamp01(c.DefaultVolume)
	return c
}

// FadeFrames converts the fade duration to frames at the output rate.
func (c Config) FadeFrames() int {
	return int(int64(c.Fade) * int64(c.SampleRate) / int64(time.Second))
}

// Engine mixes any number of looping tracks into one stream. It implements
// audio.Source: whatever drives the output device calls ReadSamples, and
// that goroutine is the only one that ever changes the mix. Everyone else
// talks to it through Submit and reads it through Snapshot.
type Engine struct {
	cfg     Config
	catalog Catalog
	open    Opener
	log     *zap.Logger

	cmds   *handoff[Command]
	loads  *handoff[loadRequest]
	events chan Event
	snap   atomic.Pointer[Snapshot]
	out    tap

	dropped atomic.Uint64
	closed  atomic.Bool

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// owned by the audio goroutine
	handles      map[string]*handle
	order        []*handle
	volumes      map[string]float32
	master       gain.Ramp
	gen          uint64
	buffers      uint64
	batch        []Command
	pendingLoads []loadRequest
	scratch      []float32

	// snapshot pieces that only change with the structure of the mix
	orderIDs     []string
	orderDirty   bool
	volumesView  map[string]float32
	volumesDirty bool
}

// New creates an engine and starts its loader goroutine. log may be nil.
func New(catalog Catalog, open Opener, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.Normalized()

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		cfg:     cfg,
		catalog: catalog,
		open:    open,
		log:     log.Named("engine"),
		cmds:    newHandoff[Command](32),
		loads:   newHandoff[loadRequest](cfg.MaxTracks),
		events:  make(chan Event, cfg.EventBuffer),
		cancel:  cancel,
		handles: make(map[string]*handle, cfg.MaxTracks),
		order:   make([]*handle, 0, cfg.MaxTracks),
		volumes: make(map[string]float32),
		master:  gain.NewRamp(cfg.MasterVolume, cfg.FadeFrames()),
		scratch: make([]float32, cfg.BufferFrames*cfg.Channels),
		batch:   make([]Command, 0, 32),
	}
	e.publish()

	e.wg.Add(1)
	go e.runLoader(ctx)

	return e
}

func (e *Engine) Config() Config { return e.cfg }

// Submit queues a command for the next buffer. It never waits for audio.
func (e *Engine) Submit(cmd Command) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if cmd.Op < OpPlay || cmd.Op > OpResumeAll {
		return &CommandError{Op: cmd.Op, Track: cmd.Track, Err: ErrInvalidOp}
	}
	e.cmds.Push(cmd)
	return nil
}

// Snapshot returns the state published after the last buffer.
func (e *Engine) Snapshot() *Snapshot { return e.snap.Load() }

// Events delivers notifications from the audio goroutine. Events are
// dropped, and counted in Stats.DroppedEvents, when nobody keeps up.
func (e *Engine) Events() <-chan Event { return e.events }

// Tap copies the most recent output buffer into dst.
func (e *Engine) Tap(dst []float32) int { return e.out.read(dst) }

func (e *Engine) SampleRate() int { return e.cfg.SampleRate }
func (e *Engine) Channels() int   { return e.cfg.Channels }
func (e *Engine) BufSize() int    { return e.cfg.BufferFrames * e.cfg.Channels }

// ReadSamples renders the next buffer. It always fills dst completely and
// never fails; tracks that break are dropped from the mix and reported as
// events.
func (e *Engine) ReadSamples(dst []float32) (int, error) {
	ch := e.cfg.Channels
	usable := len(dst) - len(dst)%ch
	out := dst[:usable]
	clear(dst)

	e.drain()
	e.requestLoads()

	if cap(e.scratch) < usable {
		e.scratch = make([]float32, usable)
	}
	buf := e.scratch[:usable]

	for _, h := range e.order {
		if h.src == nil || !h.state.Audible() {
			continue
		}

		err := h.fill(buf)
		h.mix(out, buf, ch)
		h.frames += int64(usable / ch)

		if err != nil {
			e.fail(h, err)
			continue
		}
		e.settle(h)
	}

	e.master.Apply(out, ch)
	e.compact()

	e.out.write(out)
	e.buffers++
	e.publish()

	return len(dst), nil
}

// Shutdown fades every track out and waits until the mix is empty or ctx
// ends. Someone must keep pulling ReadSamples meanwhile.
func (e *Engine) Shutdown(ctx context.Context) error {
	if err := e.Submit(StopAll()); err != nil {
		return err
	}

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for {
		if len(e.Snapshot().Tracks) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// Close stops the loader and releases every source. Call it only after
// the device has stopped pulling.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.cancel()
	e.wg.Wait()

	for _, h := range e.order {
		h.release()
	}
	e.order = e.order[:0]
	clear(e.handles)

	for _, cmd := range e.cmds.Drain(nil) {
		if cmd.load != nil && cmd.load.src != nil {
			_ = cmd.load.src.Close()
		}
	}

	return nil
}

// drain applies every queued command in arrival order. If a producer holds
// the queue right now the batch waits for the next buffer.
func (e *Engine) drain() {
	batch, ok := e.cmds.TryDrain(e.batch)
	if !ok {
		return
	}
	for _, cmd := range batch {
		e.apply(cmd)
	}
	clear(batch)
	e.batch = batch[:0]
}

func (e *Engine) requestLoads() {
	if len(e.pendingLoads) == 0 {
		return
	}
	kept := e.pendingLoads[:0]
	for _, req := range e.pendingLoads {
		if !e.loads.TryPush(req) {
			kept = append(kept, req)
		}
	}
	e.pendingLoads = kept
}

// settle finishes a fade once the ramp reaches its target.
func (e *Engine) settle(h *handle) {
	if !h.ramp.Done() {
		return
	}
	switch h.state {
	case Starting:
		h.state = Playing
		e.emit(Event{Kind: EventTrackPlaying, Track: h.id, Level: h.volume})
	case Pausing:
		h.state = Paused
		e.emit(Event{Kind: EventTrackPaused, Track: h.id})
	case Stopping:
		e.remove(h)
		e.emit(Event{Kind: EventTrackStopped, Track: h.id})
	}
}

func (e *Engine) fail(h *handle, err error) {
	e.remove(h)
	e.emit(Event{Kind: EventTrackFailed, Track: h.id, Err: err})
}

func (e *Engine) remove(h *handle) {
	h.release()
	if e.handles[h.id] == h {
		delete(e.handles, h.id)
	}
	e.orderDirty = true
}

func (e *Engine) compact() {
	if !e.orderDirty {
		return
	}
	e.order = slices.DeleteFunc(e.order, func(h *handle) bool { return h.removed })
}
