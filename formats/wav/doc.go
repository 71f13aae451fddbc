// SPDX-License-Identifier: EPL-2.0

// Package wav reads integer PCM WAV files through go-audio/wav and writes
// 16-bit PCM WAV files.
//
// Decoder accepts 8, 16, 24 and 32 bit PCM with any channel count. 8-bit
// data is unsigned in WAV and is re-centred. Float and compressed WAV
// files are rejected with ErrOnlyPCMSupported.
//
// go-audio needs to seek between chunks, so a reader that cannot seek is
// read into memory first.
//
// WriteWAV16 produces a canonical 44 byte header followed by interleaved
// little-endian samples. It is used to render mixes to disk.
package wav
