// SPDX-License-Identifier: EPL-2.0

package formats_test

import (
	"io/fs"
	"testing"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/formats"
	"github.com/ik5/noisemix/sounds"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := formats.NewRegistry()
	for _, ext := range formats.Extensions {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("no decoder for %q", ext)
		}
	}
	for _, alias := range []string{"wave", "oga", "aifc", "AIF"} {
		if _, ok := reg.Get(alias); !ok {
			t.Errorf("no decoder for alias %q", alias)
		}
	}
}

func TestBundledSoundsDecode(t *testing.T) {
	t.Parallel()

	reg := formats.NewRegistry()
	files, err := fs.Glob(sounds.FS(), "*/*.wav")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no bundled sounds")
	}

	for _, name := range files {
		data, err := fs.ReadFile(sounds.FS(), name)
		if err != nil {
			t.Fatal(err)
		}

		l, err := audio.Open(reg, data, audio.FormatFromPath(name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		// read past the end of the file to go round the loop once
		buf := make([]float32, 4096*l.Channels())
		var peak float32
		for l.Loops() == 0 {
			if _, err := l.ReadSamples(buf); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			for _, v := range buf {
				peak = max(peak, v, -v)
			}
		}
		_ = l.Close()

		if peak == 0 || peak > 1 {
			t.Errorf("%s: peak %v", name, peak)
		}
	}
}
