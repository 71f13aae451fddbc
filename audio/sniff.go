// SPDX-License-Identifier: EPL-2.0

package audio

import "bytes"

// Sniff inspects the leading bytes of an encoded stream and returns the
// format key it belongs to ("wav", "ogg", "flac", "aiff", "mp3"), or "" when
// the data is not recognised.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav"
	case bytes.HasPrefix(data, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(data, []byte("fLaC")):
		return "flac"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(data, []byte("ID3")):
		return "mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return "mp3"
	}
	return ""
}

// Open picks a decoder for data, sniffing the content first and falling back
// to hint (usually the file extension), and returns a Looper over it.
// The stream is decoded once here so that unsupported or broken files fail
// at open time rather than in the middle of playback.
func Open(reg *Registry, data []byte, hint string) (*Looper, error) {
	format := Sniff(data)
	if format == "" {
		format = normalizeFormat(hint)
	}

	dec, ok := reg.Get(format)
	if !ok {
		return nil, unsupported(format, ErrUnsupportedFormat)
	}

	return NewLooper(format, dec, data)
}
