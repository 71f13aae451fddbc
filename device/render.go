// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/formats/wav"
	"github.com/ik5/noisemix/utils"
)

// Collect pulls frames from src and converts them to 16-bit PCM. It stops
// early at io.EOF.
func Collect(src audio.Source, frames int) ([]int16, error) {
	ch := src.Channels()
	total := frames * ch

	pcm := make([]int16, 0, total)
	buf := make([]float32, max(src.BufSize(), ch))
	buf = buf[:len(buf)-len(buf)%ch]

	for len(pcm) < total {
		chunk := buf[:min(len(buf), total-len(pcm))]

		n, err := src.ReadSamples(chunk)
		if n > 0 {
			start := len(pcm)
			pcm = pcm[:start+n]
			utils.FloatsToInt16(pcm[start:], chunk[:n])
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pcm, fmt.Errorf("reading source: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm, nil
}

// Render bounces frames of src into a 16-bit WAV file.
func Render(w io.Writer, src audio.Source, frames int) error {
	pcm, err := Collect(src, frames)
	if err != nil {
		return err
	}
	return wav.WriteWAV16(w, src.SampleRate(), src.Channels(), pcm)
}
