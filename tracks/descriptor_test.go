// SPDX-License-Identifier: EPL-2.0

package tracks

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"heavy_rain", "heavy_rain"},
		{"Heavy Rain", "heavy_rain"},
		{"  Heavy -- Rain ", "heavy_rain"},
		{"nature/forest", "forest"},
		{"__leading", "leading"},
		{"trailing-", "trailing"},
		{"café", "café"},
		{"rain.night", "rain.night"},
		{"v1.5 waves", "v1.5_waves"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeID(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeID(got); again != got {
			t.Errorf("NormalizeID(%q) = %q, not stable", got, again)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"heavy_rain":     "Heavy Rain",
		"brown-noise":    "Brown Noise",
		"fire":           "Fire",
		"city  traffic_": "City Traffic",
	}
	for in, want := range tests {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDescriptor_Open(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"nature/rain.wav": {Data: []byte("RIFF")}}
	d := Descriptor{ID: "rain", Location: "nature/rain.wav", fsys: fsys}

	data, err := d.Open()
	if err != nil || string(data) != "RIFF" {
		t.Fatalf("Open() = %q, %v", data, err)
	}
	if d.Path() != "nature/rain.wav" {
		t.Errorf("Path() = %q", d.Path())
	}

	gone := Descriptor{ID: "gone", Location: "gone.wav", fsys: fsys}
	if _, err := gone.Open(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := (Descriptor{ID: "zero"}).Open(); !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("zero descriptor error = %v", err)
	}

	onDisk := Descriptor{Location: "nature/rain.wav", dir: "/srv/sounds"}
	if want := filepath.Join("/srv/sounds", "nature", "rain.wav"); onDisk.Path() != want {
		t.Errorf("Path() = %q, want %q", onDisk.Path(), want)
	}
}
