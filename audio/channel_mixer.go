// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts the channel layout of a source. Many-to-one averages
// all input channels, one-to-many copies the single channel to every output,
// and other combinations map output channel c to input channel c modulo the
// input count.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	if channels <= 0 {
		channels = src.Channels()
	}
	return &ChannelMixer{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

// NewMonoMixer is a ChannelMixer producing one channel.
func NewMonoMixer(src Source) *ChannelMixer { return NewChannelMixer(src, 1) }

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	samplesNeeded := frames * in

	// grow, never shrink
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / in

	switch {
	case m.out == 1 && in == 2:
		for f := range got {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case m.out == 1:
		inv := float32(1.0) / float32(in)
		for f := range got {
			sum := float32(0)
			base := f * in
			for c := range in {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	case in == 1:
		for f := range got {
			v := m.tmp[f]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = v
			}
		}
	default:
		for f := range got {
			srcBase := f * in
			dstBase := f * m.out
			for c := range m.out {
				dst[dstBase+c] = m.tmp[srcBase+c%in]
			}
		}
	}

	return got * m.out, err
}
