// SPDX-License-Identifier: EPL-2.0

package engine

import "sync"

// tap keeps a copy of the last mixed buffer for meters.
type tap struct {
	mu  sync.Mutex
	buf []float32
}

// write skips the copy when a reader holds the lock.
func (t *tap) write(src []float32) {
	if !t.mu.TryLock() {
		return
	}
	t.buf = append(t.buf[:0], src...)
	t.mu.Unlock()
}

func (t *tap) read(dst []float32) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copy(dst, t.buf)
}
