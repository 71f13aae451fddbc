// SPDX-License-Identifier: EPL-2.0

// Package audio holds the building blocks that turn an encoded file into
// an endless PCM stream at the rate and layout of the output device.
//
// Everything is a Source: interleaved float32 samples in [-1, 1], read in
// buffers whose length is a multiple of the channel count.
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Decoding
//
// Decoders are registered by format key with optional aliases:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, "wave")
//	reg.Register("aiff", aiff.Decoder{}, "aif", "aifc")
//
// Open sniffs the data first and only falls back to the file extension
// when the content is not recognised. It returns a Looper, which decodes
// the file again from memory whenever it ends, inside the same
// ReadSamples call, so the seam between two passes is sample-contiguous.
// A Looper never returns io.EOF.
//
// Failures are *DecodeError values. errors.Is(err, ErrUnsupportedFormat)
// and errors.Is(err, ErrCorrupt) tell the two kinds apart.
//
// # Conversion
//
// NewPipeline chains a ChannelMixer and a Resampler as needed:
//
//	src, err := audio.Open(reg, data, "ogg")
//	if err != nil {
//	    return err
//	}
//	out := audio.NewPipeline(src, 48000, 2)
//
// The Resampler uses Catmull-Rom interpolation with a one-pole low-pass in
// front of it when downsampling. The ChannelMixer averages when reducing
// channels and copies when widening. Neither allocates once warmed up.
package audio
