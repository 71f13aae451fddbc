// SPDX-License-Identifier: EPL-2.0

package audio

// NewPipeline adapts src to the given rate and channel count. Stages that
// would be identity are skipped. When channels are reduced the mixdown runs
// before resampling, otherwise after it, so the resampler always works on
// the smaller layout.
func NewPipeline(src Source, rate, channels int) Source {
	var out Source = src

	switch {
	case src.Channels() > channels:
		out = NewChannelMixer(out, channels)
		if out.SampleRate() != rate {
			out = NewResampler(out, rate)
		}
	case src.Channels() < channels:
		if out.SampleRate() != rate {
			out = NewResampler(out, rate)
		}
		out = NewChannelMixer(out, channels)
	default:
		if out.SampleRate() != rate {
			out = NewResampler(out, rate)
		}
	}

	return out
}
