// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/tracks"
)

// Opener turns a track into a source already converted to the engine's
// rate and channel count.
type Opener func(tracks.Descriptor) (audio.Source, error)

// NewOpener reads the track into memory, picks a decoder from reg and wraps
// it in a looping pipeline.
func NewOpener(reg *audio.Registry, rate, channels int) Opener {
	return func(d tracks.Descriptor) (audio.Source, error) {
		data, err := d.Open()
		if err != nil {
			return nil, err
		}

		looper, err := audio.Open(reg, data, d.Format)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", d.ID, err)
		}

		return audio.NewPipeline(looper, rate, channels), nil
	}
}

type loadRequest struct {
	id   string
	gen  uint64
	desc tracks.Descriptor
}

type loadResult struct {
	gen uint64
	src audio.Source
	err error
}

// runLoader opens decoders off the audio goroutine and hands them back
// through the command queue.
func (e *Engine) runLoader(ctx context.Context) {
	defer e.wg.Done()

	var batch []loadRequest
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.loads.Ready():
		}

		batch = e.loads.Drain(batch)
		for i, req := range batch {
			if ctx.Err() != nil {
				return
			}
			e.load(req)
			batch[i] = loadRequest{}
		}
	}
}

func (e *Engine) load(req loadRequest) {
	start := time.Now()
	src, err := e.open(req.desc)

	if err != nil {
		e.log.Warn("track failed to load",
			zap.String("track", req.id),
			zap.String("path", req.desc.Path()),
			zap.Error(err),
		)
	} else {
		e.log.Debug("track loaded",
			zap.String("track", req.id),
			zap.Int("rate", src.SampleRate()),
			zap.Int("channels", src.Channels()),
			zap.Duration("took", time.Since(start)),
		)
	}

	e.cmds.Push(Command{
		Op:    opLoaded,
		Track: req.id,
		load:  &loadResult{gen: req.gen, src: src, err: err},
	})
}
