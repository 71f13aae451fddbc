// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides in-memory sources for tests. It does not import
// the audio package, so audio's own tests can use it too.
package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// Endless makes a MockSource that never reaches end of stream.
const Endless = -1

// MockSource generates frames from a waveform function.
type MockSource struct {
	sampleRate int
	channels   int
	total      int // frames to generate, or Endless
	generated  int
	waveform   func(frame, channel int) float32

	failAfter int // frames before Err is returned, 0 disables
	Err       error

	closes atomic.Int32
}

// NewMockSource creates a source of total frames (Endless for no end).
func NewMockSource(sampleRate, channels, total int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		total:      total,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, total int) *MockSource {
	return NewConstantSource(sampleRate, channels, total, 0)
}

func NewSineSource(sampleRate, channels, total int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, total int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(int, int) float32 {
		return value
	})
}

// NewRampSource counts frames: frame i has value i on every channel.
func NewRampSource(sampleRate, channels, total int) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(frame, _ int) float32 {
		return float32(frame)
	})
}

// FailAfter makes ReadSamples return err once frames have been produced.
func (m *MockSource) FailAfter(frames int, err error) *MockSource {
	m.failAfter = frames
	m.Err = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closes.Add(1)
	return nil
}

// Closes reports how many times Close was called.
func (m *MockSource) Closes() int { return int(m.closes.Load()) }

// Generated reports the number of frames produced so far.
func (m *MockSource) Generated() int { return m.generated }

func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.total != Endless && m.generated >= m.total {
		return 0, io.EOF
	}
	if m.failAfter > 0 && m.generated >= m.failAfter {
		return 0, m.Err
	}

	frames := len(dst) / m.channels
	if m.total != Endless {
		frames = min(frames, m.total-m.generated)
	}
	if m.failAfter > 0 {
		frames = min(frames, m.failAfter-m.generated)
	}

	for f := range frames {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames

	if m.total != Endless && m.generated >= m.total {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
