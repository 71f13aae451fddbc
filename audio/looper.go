// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxStalls bounds how many consecutive (0, nil) reads a decoder may return
// before the Looper treats it as end of stream.
const maxStalls = 8

// Looper turns a finite encoded stream into an endless one. When the decoder
// reaches the end, the stream is decoded again from the in-memory bytes and
// reading continues inside the same ReadSamples call, so consecutive loops are
// sample-contiguous.
type Looper struct {
	format   string
	dec      Decoder
	data     []byte
	cur      Source
	rate     int
	channels int

	pos   int64 // frames into the current pass
	loops int
}

// NewLooper decodes data with dec and returns a looping source. format is
// only used for error reporting.
func NewLooper(format string, dec Decoder, data []byte) (*Looper, error) {
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, corrupt(format, err)
	}

	if src.Channels() <= 0 || src.SampleRate() <= 0 {
		_ = src.Close()
		return nil, corrupt(format, fmt.Errorf("invalid stream layout: %d Hz, %d channels", src.SampleRate(), src.Channels()))
	}

	return &Looper{
		format:   format,
		dec:      dec,
		data:     data,
		cur:      src,
		rate:     src.SampleRate(),
		channels: src.Channels(),
	}, nil
}

func (l *Looper) SampleRate() int { return l.rate }
func (l *Looper) Channels() int   { return l.channels }
func (l *Looper) Format() string  { return l.format }

func (l *Looper) BufSize() int {
	if l.cur == nil {
		return 4096
	}
	return l.cur.BufSize()
}

// Position is the number of frames played since the start of the current loop.
func (l *Looper) Position() int64 { return l.pos }

// Loops is the number of times the stream wrapped around.
func (l *Looper) Loops() int { return l.loops }

func (l *Looper) Close() error {
	if l.cur == nil {
		return nil
	}
	err := l.cur.Close()
	l.cur = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Reset moves the cursor back to the first sample.
func (l *Looper) Reset() error {
	if err := l.rewind(); err != nil {
		return err
	}
	l.loops = 0
	return nil
}

func (l *Looper) rewind() error {
	if l.cur != nil {
		_ = l.cur.Close()
		l.cur = nil
	}

	src, err := l.dec.Decode(bytes.NewReader(l.data))
	if err != nil {
		return corrupt(l.format, err)
	}
	if src.Channels() != l.channels || src.SampleRate() != l.rate {
		_ = src.Close()
		return corrupt(l.format, errors.New("stream layout changed between loops"))
	}

	l.cur = src
	l.pos = 0
	return nil
}

// ReadSamples always fills dst completely unless the decoder fails. It never
// returns io.EOF.
func (l *Looper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%l.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if l.cur == nil {
		return 0, corrupt(l.format, io.ErrClosedPipe)
	}

	written := 0
	stalls := 0

	for written < len(dst) {
		n, err := l.cur.ReadSamples(dst[written:])
		written += n
		l.pos += int64(n / l.channels)

		if n > 0 {
			stalls = 0
		}

		if err == nil {
			if n == 0 {
				stalls++
				if stalls < maxStalls {
					continue
				}
				err = io.EOF
			} else {
				continue
			}
		}

		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return written, corrupt(l.format, err)
		}

		if l.pos == 0 {
			return written, corrupt(l.format, ErrEmptySource)
		}

		if err := l.rewind(); err != nil {
			return written, err
		}
		l.loops++
		stalls = 0
	}

	return written, nil
}
