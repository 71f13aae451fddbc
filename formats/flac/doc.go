// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams frame by frame through mewkiz/flac.
// A frame is interleaved once and handed out across as many ReadSamples
// calls as the caller needs.
package flac
