// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through jfreymuth/oggvorbis, which
// already yields interleaved float32 samples.
package vorbis
