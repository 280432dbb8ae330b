// Package schedule runs cancellable one-shot callbacks after a delay.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle refers to one scheduled callback.
type Handle struct {
	timer    *time.Timer
	once     sync.Once
	canceled atomic.Bool
	fired    atomic.Bool
}

// After calls fn on its own goroutine once delay has elapsed, unless the
// returned handle is canceled first. A nil fn is allowed and only marks the
// handle fired.
func After(delay time.Duration, fn func()) *Handle {
	h := &Handle{}
	h.timer = time.AfterFunc(delay, func() {
		h.once.Do(func() {
			h.fired.Store(true)
			if fn != nil {
				fn()
			}
		})
	})
	return h
}

// Cancel prevents the callback from running if it has not started yet. It
// is safe to call any number of times, after firing, and on a nil handle.
// It reports whether this call stopped the callback.
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}
	stopped := false
	h.once.Do(func() {
		h.timer.Stop()
		h.canceled.Store(true)
		stopped = true
	})
	return stopped
}

// Fired reports whether the callback has started.
func (h *Handle) Fired() bool {
	return h != nil && h.fired.Load()
}

// Canceled reports whether Cancel stopped the callback.
func (h *Handle) Canceled() bool {
	return h != nil && h.canceled.Load()
}
