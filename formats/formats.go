// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/formats/aiff"
	"github.com/ik5/noisemix/formats/flac"
	"github.com/ik5/noisemix/formats/mp3"
	"github.com/ik5/noisemix/formats/vorbis"
	"github.com/ik5/noisemix/formats/wav"
)

// Extensions lists the file extensions the bundled decoders accept.
var Extensions = []string{"wav", "mp3", "ogg", "flac", "aiff", "aif"}

// Register adds the bundled decoders to reg.
func Register(reg *audio.Registry) {
	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{}, "oga", "vorbis")
	reg.Register("flac", flac.Decoder{})
	reg.Register("aiff", aiff.Decoder{}, "aif", "aifc")
}

// NewRegistry returns a registry holding the bundled decoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg)
	return reg
}
