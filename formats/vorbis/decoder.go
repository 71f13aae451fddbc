// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/noisemix/audio"
	"github.com/jfreymuth/oggvorbis"
)

var ErrNotVorbisFile = errors.New("not an Ogg Vorbis stream")

// oggReader is the part of *oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples decodes straight into dst. oggvorbis.Reader.Read takes an
// interleaved buffer and reports the number of samples it wrote.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	usable := len(dst) - len(dst)%s.channels
	if usable == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst[:usable])
	if n == 0 && err == nil {
		return 0, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("vorbis: %w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	if r == nil {
		return nil, ErrNotVorbisFile
	}

	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	if dec.Channels() <= 0 {
		return nil, ErrNotVorbisFile
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
