// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/utils"
	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

var (
	ErrNotFlacFile         = errors.New("not a FLAC stream")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)

// frameReader is the part of goflac.Stream the source needs, to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	dec        frameReader
	sampleRate int
	channels   int
	bitDepth   int

	// interleaved samples of the last parsed frame not yet handed out
	pending []float32
	off     int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return max(cap(s.pending), 4096) }

func (s *source) Close() error {
	if err := s.dec.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	written := 0

	for written < len(dst) {
		if s.off >= len(s.pending) {
			if err := s.next(); err != nil {
				if written > 0 && errors.Is(err, io.EOF) {
					return written, nil
				}
				return written, err
			}
		}

		n := copy(dst[written:], s.pending[s.off:])
		s.off += n
		written += n
	}

	return written, nil
}

// next parses one FLAC frame and interleaves its subframes into pending.
func (s *source) next() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("%w", err)
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream has %d", ErrNotFlacFile, len(f.Subframes), s.channels)
	}

	frames := f.Subframes[0].NSamples
	need := frames * s.channels
	if cap(s.pending) < need {
		s.pending = make([]float32, need)
	}
	s.pending = s.pending[:need]
	s.off = 0

	for c, sub := range f.Subframes {
		for i := 0; i < frames && i < len(sub.Samples); i++ {
			s.pending[i*s.channels+c] = utils.IntToFloat32(int(sub.Samples[i]), s.bitDepth, false)
		}
	}

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	if r == nil {
		return nil, ErrNotFlacFile
	}

	stream, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	switch info.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	if info.NChannels == 0 || info.SampleRate == 0 {
		_ = stream.Close()
		return nil, ErrNotFlacFile
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
