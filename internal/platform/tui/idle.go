package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/falldown/internal/schedule"
)

// IdleMsg is sent when the menu was left alone for the idle delay.
type IdleMsg struct {
	Gen int
}

// idleTimer reports inactivity to a Bubble Tea model. Every arm starts a new
// generation; only the latest generation counts as idle.
type idleTimer struct {
	delay  time.Duration
	ch     chan int
	done   chan struct{}
	handle *schedule.Handle
	gen    int
	closed bool
}

func newIdleTimer(delay time.Duration) *idleTimer {
	return &idleTimer{
		delay: delay,
		ch:    make(chan int, 1),
		done:  make(chan struct{}),
	}
}

// arm restarts the countdown. A non-positive delay never fires.
func (t *idleTimer) arm() {
	if t == nil || t.closed || t.delay <= 0 {
		return
	}
	t.handle.Cancel()
	t.gen++
	gen := t.gen
	t.handle = schedule.After(t.delay, func() {
		select {
		case t.ch <- gen:
		default:
		}
	})
}

// wait blocks until a countdown fires or the timer stops. Only one wait
// should be outstanding at a time.
func (t *idleTimer) wait() tea.Cmd {
	if t == nil || t.closed || t.delay <= 0 {
		return nil
	}
	ch, done := t.ch, t.done
	return func() tea.Msg {
		select {
		case gen := <-ch:
			return IdleMsg{Gen: gen}
		case <-done:
			return nil
		}
	}
}

// current reports whether msg belongs to the latest countdown.
func (t *idleTimer) current(msg IdleMsg) bool {
	return t != nil && !t.closed && msg.Gen == t.gen
}

// stop cancels the countdown and releases the waiter. Safe to call more
// than once.
func (t *idleTimer) stop() {
	if t == nil || t.closed {
		return
	}
	t.closed = true
	t.handle.Cancel()
	close(t.done)
}
