// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/noisemix/formats/wav"
)

func Example() {
	var file bytes.Buffer
	_ = wav.WriteWAV16(&file, 8000, 1, []int16{0, 8192, 16384, -16384})

	src, err := wav.Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	fmt.Println(src.SampleRate(), src.Channels(), buf[:n], err)
	// Output: 8000 1 [0 0.25 0.5 -0.5] EOF
}
