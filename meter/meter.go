// SPDX-License-Identifier: EPL-2.0

// Package meter measures the level and spectrum of mixed output.
package meter

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ik5/noisemix/gain"
)

const minFreq = 20.0

type Levels struct {
	Peak   float64
	RMS    float64
	PeakDB float64
	RMSDB  float64
	// Bands holds one dB value per log-spaced band from 20 Hz to Nyquist.
	Bands []float64
}

// Meter analyses interleaved buffers. It is not safe for concurrent use.
type Meter struct {
	rate   int
	size   int
	window []float64
	hann   []float64
	scale  float64
	edges  []float64
}

// New creates a meter using an FFT of size points and the given number of
// bands.
func New(rate, size, bands int) *Meter {
	size = max(size, 32)
	bands = max(bands, 1)

	m := &Meter{
		rate:   rate,
		size:   size,
		window: make([]float64, size),
		hann:   make([]float64, size),
		edges:  make([]float64, bands+1),
	}

	var sum float64
	for i := range size {
		m.hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
		sum += m.hann[i]
	}
	m.scale = 2 / sum

	nyquist := float64(rate) / 2
	for i := range m.edges {
		m.edges[i] = minFreq * math.Pow(nyquist/minFreq, float64(i)/float64(bands))
	}

	return m
}

// Edges returns the band boundaries in Hz.
func (m *Meter) Edges() []float64 { return append([]float64(nil), m.edges...) }

// Measure folds buf to mono and returns its levels. Only the first Size
// frames go into the spectrum.
func (m *Meter) Measure(buf []float32, channels int) Levels {
	channels = max(channels, 1)
	frames := len(buf) / channels

	var peak, sumSq float64
	for _, v := range buf[:frames*channels] {
		a := math.Abs(float64(v))
		peak = max(peak, a)
		sumSq += a * a
	}

	var rms float64
	if frames > 0 {
		rms = math.Sqrt(sumSq / float64(frames*channels))
	}

	clear(m.window)
	for f := range min(frames, m.size) {
		var mono float64
		for c := range channels {
			mono += float64(buf[f*channels+c])
		}
		m.window[f] = mono / float64(channels) * m.hann[f]
	}

	return Levels{
		Peak:   peak,
		RMS:    rms,
		PeakDB: gain.LinearToDB(float32(peak)),
		RMSDB:  gain.LinearToDB(float32(rms)),
		Bands:  m.bands(fft.FFTReal(m.window)),
	}
}

func (m *Meter) bands(coeffs []complex128) []float64 {
	binHz := float64(m.rate) / float64(m.size)
	half := m.size / 2

	out := make([]float64, len(m.edges)-1)
	for b := range out {
		lo := int(math.Ceil(m.edges[b] / binHz))
		hi := int(math.Ceil(m.edges[b+1] / binHz))
		lo = max(lo, 1)
		hi = min(max(hi, lo+1), half+1)

		var level float64
		for k := lo; k < hi && k < len(coeffs); k++ {
			level = max(level, cmplx.Abs(coeffs[k])*m.scale)
		}
		out[b] = gain.LinearToDB(float32(level))
	}
	return out
}

// Bar draws db as a bar of width cells.
func Bar(db float64, width int) string {
	filled := int(math.Round(gain.DBToPercentage(db) / 100 * float64(width)))
	filled = min(max(filled, 0), width)
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
