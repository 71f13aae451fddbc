// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF and AIFF-C files through
// go-audio/aiff. Samples are big-endian and signed at every bit depth.
package aiff
