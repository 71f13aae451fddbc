// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrCorrupt           = errors.New("corrupt audio stream")
	ErrEmptySource       = errors.New("audio stream has no samples")
	ErrInvalidChannels   = errors.New("channel count must be positive")
)

// DecodeKind classifies a DecodeError.
type DecodeKind int

const (
	// UnsupportedFormat means no decoder could be selected for the data.
	UnsupportedFormat DecodeKind = iota
	// Corrupt means a decoder was selected but the stream could not be read.
	Corrupt
)

func (k DecodeKind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported format"
	case Corrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// DecodeError reports a failure to open or read an encoded stream.
type DecodeError struct {
	Kind   DecodeKind
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s: %v", e.Format, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnsupportedFormat) and errors.Is(err, ErrCorrupt)
// match on the kind even when Err is a decoder specific error.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrUnsupportedFormat:
		return e.Kind == UnsupportedFormat
	case ErrCorrupt:
		return e.Kind == Corrupt
	}
	return false
}

func unsupported(format string, err error) error {
	return &DecodeError{Kind: UnsupportedFormat, Format: format, Err: err}
}

func corrupt(format string, err error) error {
	return &DecodeError{Kind: Corrupt, Format: format, Err: err}
}
