// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// byteDecoder reads each input byte as one sample: b/128 - 1. It hands out
// at most chunk samples per call so loop boundaries fall in the middle of
// a caller's buffer.
type byteDecoder struct {
	rate     int
	channels int
	chunk    int
	decodes  int
	fail     error
}

func (d *byteDecoder) Decode(r io.Reader) (Source, error) {
	d.decodes++
	if d.fail != nil {
		return nil, d.fail
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &byteSource{dec: d, data: data}, nil
}

type byteSource struct {
	dec    *byteDecoder
	data   []byte
	pos    int
	closed bool
}

func (s *byteSource) SampleRate() int { return s.dec.rate }
func (s *byteSource) Channels() int   { return s.dec.channels }
func (s *byteSource) BufSize() int    { return 64 }

func (s *byteSource) Close() error {
	s.closed = true
	return nil
}

func (s *byteSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := min(len(dst), len(s.data)-s.pos)
	if s.dec.chunk > 0 {
		n = min(n, s.dec.chunk)
	}
	n -= n % s.dec.channels
	for i := range n {
		dst[i] = sampleOf(s.data[s.pos+i])
	}
	s.pos += n
	return n, nil
}

func sampleOf(b byte) float32 { return float32(b)/128 - 1 }

var errBroken = errors.New("broken stream")

// brokenSource fails on the first read.
type brokenSource struct{ byteSource }

func (s *brokenSource) ReadSamples([]float32) (int, error) { return 0, errBroken }

type brokenDecoder struct{ byteDecoder }

func (d *brokenDecoder) Decode(io.Reader) (Source, error) {
	return &brokenSource{byteSource{dec: &d.byteDecoder}}, nil
}

// stallSource returns (0, nil) forever.
type stallSource struct{ byteSource }

func (s *stallSource) ReadSamples([]float32) (int, error) { return 0, nil }

type stallDecoder struct{ byteDecoder }

func (d *stallDecoder) Decode(io.Reader) (Source, error) {
	return &stallSource{byteSource{dec: &d.byteDecoder}}, nil
}
