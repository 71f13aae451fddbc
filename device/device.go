// SPDX-License-Identifier: EPL-2.0

// Package device sends an audio.Source to a sound card or a file.
package device

import (
	"errors"

	"github.com/ik5/noisemix/audio"
)

var (
	ErrStarted      = errors.New("device already started")
	ErrUnknown      = errors.New("unknown output backend")
	ErrFormatChange = errors.New("source format does not match the device")
)

// Device pulls samples from a source on its own goroutine until closed.
type Device interface {
	Start(src audio.Source) error
	Close() error
}

const (
	BackendOto  = "oto"
	BackendBeep = "beep"
	BackendNone = "none"
)

// Open returns the device for a backend name. "none" returns a nil Device
// and no error.
func Open(backend string, rate, channels, bufferFrames int) (Device, error) {
	switch backend {
	case BackendOto, "":
		return NewOto(rate, channels, bufferFrames)
	case BackendBeep:
		return NewBeep(rate, channels, bufferFrames)
	case BackendNone:
		return nil, nil
	default:
		return nil, ErrUnknown
	}
}
