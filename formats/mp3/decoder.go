// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/noisemix/audio"
)

// go-mp3 always produces 16-bit little-endian stereo
const channels = 2

var ErrNotMP3File = errors.New("not an MP3 stream")

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	odd        []byte // trailing byte of a split sample, carried to the next read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // samples, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	carried := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried
	if n < 2 {
		if n == 1 {
			s.odd = append(s.odd, s.buf[0])
		}
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
		n--
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	if r == nil {
		return nil, ErrNotMP3File
	}

	// go-mp3 walks every frame header when it can seek; a looping stream
	// never needs the length, so hide Seek from it.
	dec, err := gomp3.NewDecoder(struct{ io.Reader }{r})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
