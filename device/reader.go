// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"math"

	"github.com/ik5/noisemix/audio"
)

// floatReader exposes a source as a stream of float32 little-endian bytes.
// The engine never ends, so Read always fills p up to whole frames.
type floatReader struct {
	src audio.Source
	buf []float32
}

func newFloatReader(src audio.Source) *floatReader {
	return &floatReader{src: src, buf: make([]float32, max(src.BufSize(), 256))}
}

func (r *floatReader) Read(p []byte) (int, error) {
	ch := r.src.Channels()
	want := len(p) / 4
	want -= want % ch
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf) < want {
		r.buf = make([]float32, want)
	}
	samples := r.buf[:want]

	n, err := r.src.ReadSamples(samples)
	for i := range n {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(samples[i]))
	}
	return n * 4, err
}
