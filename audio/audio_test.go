// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"
	"sync"
	"testing"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	aiff := &byteDecoder{}
	wav := &byteDecoder{}
	reg.Register("aiff", aiff, "aif", ".AIFC")
	reg.Register(".WAV", wav)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"aiff", aiff, true},
		{"aif", aiff, true},
		{"aifc", aiff, true},
		{" AIF ", aiff, true},
		{"wav", wav, true},
		{".wav", wav, true},
		{"mp3", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := reg.Get(tt.format)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Get(%q) = %v, %v", tt.format, got, ok)
		}
	}

	if got := reg.Formats(); !slices.Equal(got, []string{"aiff", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first, second := &byteDecoder{}, &byteDecoder{}
	reg.Register("wav", first)
	reg.Register("wav", second)

	if got, _ := reg.Get("wav"); got != second {
		t.Error("second registration did not replace the first")
	}
}

func TestRegistry_Supports(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("ogg", &byteDecoder{}, "oga")

	tests := map[string]bool{
		"rain.ogg":           true,
		"sounds/Rain.OGA":    true,
		"/x/y/forest.mp3":    false,
		"README":             false,
		"dir.ogg/notes.text": false,
	}
	for path, want := range tests {
		if got := reg.Supports(path); got != want {
			t.Errorf("Supports(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"rain.WAV":           "wav",
		"a/b/c.flac":         "flac",
		"noext":              "",
		"archive.tar.gz":     "gz",
		"nature/.hidden.mp3": "mp3",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	dec := &byteDecoder{}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register("raw", dec)
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.Get("raw")
			_ = reg.Formats()
		}()
	}
	wg.Wait()

	if got, ok := reg.Get("raw"); !ok || got != dec {
		t.Error("decoder missing after concurrent registration")
	}
}
