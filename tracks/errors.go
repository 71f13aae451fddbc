// SPDX-License-Identifier: EPL-2.0

package tracks

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadable = errors.New("sound directory unreadable")
	ErrNoRoots    = errors.New("no sound directories to watch")
)

// RegistryError reports a directory (or subtree) that could not be read
// during a scan. It never aborts the scan.
type RegistryError struct {
	Root string
	Path string
	Err  error
}

func (e *RegistryError) Error() string {
	if e.Path == "" || e.Path == "." {
		return fmt.Sprintf("scan %s: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("scan %s: %s: %v", e.Root, e.Path, e.Err)
}

func (e *RegistryError) Unwrap() []error { return []error{ErrUnreadable, e.Err} }
