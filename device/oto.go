// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/noisemix/audio"
)

// Oto plays through ebitengine/oto. Only one oto context may exist per
// process.
type Oto struct {
	ctx      *oto.Context
	rate     int
	channels int

	mu     sync.Mutex
	player *oto.Player
}

func NewOto(rate, channels, bufferFrames int) (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(bufferFrames) * time.Second / time.Duration(rate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Oto{ctx: ctx, rate: rate, channels: channels}, nil
}

func (o *Oto) Start(src audio.Source) error {
	if src.SampleRate() != o.rate || src.Channels() != o.channels {
		return fmt.Errorf("%w: %d Hz/%d ch, device %d Hz/%d ch",
			ErrFormatChange, src.SampleRate(), src.Channels(), o.rate, o.channels)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return ErrStarted
	}

	o.player = o.ctx.NewPlayer(newFloatReader(src))
	o.player.Play()
	return nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}
	o.player.Pause()
	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return o.ctx.Suspend()
}
