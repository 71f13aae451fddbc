// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every source from this package
// reports two channels whatever the file holds. Mono files come out with
// the same signal on both sides.
//
// go-mp3 does not trim the encoder delay at the start of a stream or the
// padding in its last frame, and it does not read gapless (LAME/Xing)
// metadata. A looping MP3 therefore carries a few milliseconds of silence
// at every wrap. Use Ogg Vorbis, FLAC or WAV for loops that must be
// sample exact.
package mp3
