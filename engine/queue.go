// SPDX-License-Identifier: EPL-2.0

package engine

import "sync"

// handoff passes values between goroutines through a double-buffered slice.
// The audio goroutine only ever uses the Try variants, so it never waits on
// a lock held by someone else; when it loses the race it simply tries again
// on the next buffer and arrival order is preserved.
type handoff[T any] struct {
	mu      sync.Mutex
	pending []T
	signal  chan struct{}
}

func newHandoff[T any](capacity int) *handoff[T] {
	return &handoff[T]{
		pending: make([]T, 0, capacity),
		signal:  make(chan struct{}, 1),
	}
}

// Push appends v. It may block briefly on the lock.
func (h *handoff[T]) Push(v T) {
	h.mu.Lock()
	h.pending = append(h.pending, v)
	h.mu.Unlock()
	h.notify()
}

// TryPush appends v unless the lock is contended.
func (h *handoff[T]) TryPush(v T) bool {
	if !h.mu.TryLock() {
		return false
	}
	h.pending = append(h.pending, v)
	h.mu.Unlock()
	h.notify()
	return true
}

// Drain swaps the pending values into dst (reset to length zero) and
// returns them.
func (h *handoff[T]) Drain(dst []T) []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.swap(dst)
}

// TryDrain is Drain without waiting; ok is false when the lock was busy.
func (h *handoff[T]) TryDrain(dst []T) ([]T, bool) {
	if !h.mu.TryLock() {
		return dst[:0], false
	}
	defer h.mu.Unlock()
	return h.swap(dst), true
}

// Ready is signalled after a push.
func (h *handoff[T]) Ready() <-chan struct{} { return h.signal }

func (h *handoff[T]) swap(dst []T) []T {
	out := h.pending
	h.pending = dst[:0]
	return out
}

func (h *handoff[T]) notify() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}
