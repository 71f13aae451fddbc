// SPDX-License-Identifier: EPL-2.0

package noisemix

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/device"
	"github.com/ik5/noisemix/engine"
	"github.com/ik5/noisemix/formats"
	"github.com/ik5/noisemix/tracks"
)

const subscriberBuffer = 64

type Config struct {
	// Bundled, when set, is scanned first.
	Bundled fs.FS
	// Dirs are scanned after Bundled in order; later ones win on id clashes.
	Dirs []string
	// Watch rescans Dirs when files change.
	Watch  bool
	Engine engine.Config
}

type Option func(*Player)

func WithLogger(log *zap.Logger) Option {
	return func(p *Player) { p.log = log }
}

// WithDevice starts dev on the engine as part of New. Without a device
// nothing pulls the engine unless the caller does.
func WithDevice(dev device.Device) Option {
	return func(p *Player) { p.dev = dev }
}

// WithFormats replaces the default decoder registry.
func WithFormats(reg *audio.Registry) Option {
	return func(p *Player) { p.formats = reg }
}

// WithOpener replaces how tracks are turned into sources.
func WithOpener(open engine.Opener) Option {
	return func(p *Player) { p.opener = open }
}

// Player is the control surface for the mixer. Every control method queues
// one command and returns at once; results arrive on Events and in
// Snapshot.
type Player struct {
	log      *zap.Logger
	formats  *audio.Registry
	opener   engine.Opener
	dev      device.Device
	registry *tracks.Registry
	engine   *engine.Engine

	subsMu sync.Mutex
	subs   []chan engine.Event

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New scans the sound roots, creates the engine and, if a device was given,
// starts playback. A partially failed scan is logged, not returned.
func New(cfg Config, opts ...Option) (*Player, error) {
	p := &Player{}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.formats == nil {
		p.formats = formats.NewRegistry()
	}

	ecfg := cfg.Engine
	if p.opener == nil {
		n := ecfg.Normalized()
		p.opener = engine.NewOpener(p.formats, n.SampleRate, n.Channels)
	}

	var roots []tracks.Root
	if cfg.Bundled != nil {
		roots = append(roots, tracks.FSRoot("bundled", cfg.Bundled))
	}
	for _, dir := range cfg.Dirs {
		roots = append(roots, tracks.DirRoot(dir))
	}

	p.registry = tracks.NewRegistry(roots, formats.Extensions, p.log.Named("tracks"))
	if _, err := p.registry.Rescan(); err != nil {
		p.log.Warn("some sound directories could not be read", zap.Error(err))
	}

	p.engine = engine.New(p.registry, p.opener, ecfg, p.log)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go p.pump(ctx)

	if cfg.Watch && len(cfg.Dirs) > 0 {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			err := p.registry.Watch(ctx, tracks.DefaultDebounce)
			if err != nil && !errors.Is(err, tracks.ErrNoRoots) {
				p.log.Warn("sound directory watch stopped", zap.Error(err))
			}
		}()
	}

	if p.dev != nil {
		if err := p.dev.Start(p.engine); err != nil {
			p.shutdown()
			return nil, fmt.Errorf("starting output: %w", err)
		}
	}

	return p, nil
}

func (p *Player) Play(id string) error   { return p.engine.Submit(engine.Play(id)) }
func (p *Player) Stop(id string) error   { return p.engine.Submit(engine.Stop(id)) }
func (p *Player) Pause(id string) error  { return p.engine.Submit(engine.Pause(id)) }
func (p *Player) Resume(id string) error { return p.engine.Submit(engine.Resume(id)) }

// SetVolume sets a track level in [0, 1]; out of range values are clamped.
// It may be called for a track that is not playing.
func (p *Player) SetVolume(id string, level float32) error {
	return p.engine.Submit(engine.SetVolume(id, level))
}

func (p *Player) SetMasterVolume(level float32) error {
	return p.engine.Submit(engine.SetMasterVolume(level))
}

func (p *Player) StopAll() error   { return p.engine.Submit(engine.StopAll()) }
func (p *Player) PauseAll() error  { return p.engine.Submit(engine.PauseAll()) }
func (p *Player) ResumeAll() error { return p.engine.Submit(engine.ResumeAll()) }

func (p *Player) Snapshot() *engine.Snapshot { return p.engine.Snapshot() }

// Engine gives direct access for meters and offline rendering.
func (p *Player) Engine() *engine.Engine { return p.engine }

func (p *Player) Tracks() []tracks.Descriptor { return p.registry.Catalog().All() }

func (p *Player) Lookup(id string) (tracks.Descriptor, bool) { return p.registry.Lookup(id) }

func (p *Player) Rescan() error {
	_, err := p.registry.Rescan()
	return err
}

// Events returns a new subscription. The channel is closed by Close. A
// subscriber that falls behind misses events.
func (p *Player) Events() <-chan engine.Event {
	ch := make(chan engine.Event, subscriberBuffer)
	p.subsMu.Lock()
	p.subs = append(p.subs, ch)
	p.subsMu.Unlock()
	return ch
}

// Close fades everything out, stops the device and releases the engine.
func (p *Player) Close() error {
	var err error
	p.closeOnce.Do(func() {
		if p.dev != nil {
			wait := 2*p.engine.Config().Fade + 500*time.Millisecond
			ctx, cancel := context.WithTimeout(context.Background(), wait)
			if serr := p.engine.Shutdown(ctx); serr != nil {
				p.log.Debug("fade out cut short", zap.Error(serr))
			}
			cancel()

			if derr := p.dev.Close(); derr != nil {
				err = fmt.Errorf("closing output: %w", derr)
			}
		}
		p.shutdown()
	})
	return err
}

func (p *Player) shutdown() {
	p.cancel()
	p.wg.Wait()
	_ = p.engine.Close()

	p.subsMu.Lock()
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	p.subsMu.Unlock()
}

// pump logs engine events and fans them out to subscribers.
func (p *Player) pump(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.engine.Events():
			p.logEvent(ev)

			p.subsMu.Lock()
			for _, ch := range p.subs {
				select {
				case ch <- ev:
				default:
				}
			}
			p.subsMu.Unlock()
		}
	}
}

func (p *Player) logEvent(ev engine.Event) {
	fields := []zap.Field{zap.String("event", ev.Kind.String())}
	if ev.Track != "" {
		fields = append(fields, zap.String("track", ev.Track))
	}

	switch ev.Kind {
	case engine.EventTrackFailed:
		p.log.Warn("track failed", append(fields, zap.Error(ev.Err))...)
	case engine.EventCommandIgnored:
		p.log.Debug("command ignored", append(fields, zap.Error(ev.Err))...)
	case engine.EventVolumeChanged, engine.EventMasterVolumeChanged:
		p.log.Debug("volume changed", append(fields, zap.Float32("level", ev.Level))...)
	default:
		p.log.Info("track state", fields...)
	}
}
