package tui

import (
	"testing"
	"time"
)

func waitIdle(t *testing.T, timer *idleTimer) IdleMsg {
	t.Helper()
	cmd := timer.wait()
	if cmd == nil {
		t.Fatal("wait returned no command")
	}
	got := make(chan any, 1)
	go func() { got <- cmd() }()
	select {
	case msg := <-got:
		idle, ok := msg.(IdleMsg)
		if !ok {
			t.Fatalf("wait produced %T, want IdleMsg", msg)
		}
		return idle
	case <-time.After(time.Second):
		t.Fatal("idle timer never fired")
	}
	return IdleMsg{}
}

func TestIdleTimerFires(t *testing.T) {
	timer := newIdleTimer(5 * time.Millisecond)
	defer timer.stop()

	timer.arm()
	msg := waitIdle(t, timer)
	if !timer.current(msg) {
		t.Errorf("msg %+v should be current (gen %d)", msg, timer.gen)
	}

	timer.arm()
	if timer.current(msg) {
		t.Error("re-arming should make the old message stale")
	}
}

func TestIdleTimerStop(t *testing.T) {
	timer := newIdleTimer(time.Hour)
	timer.arm()
	cmd := timer.wait()

	timer.stop()
	timer.stop()

	done := make(chan any, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("stopped timer produced %v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter not released by stop")
	}

	if timer.wait() != nil {
		t.Error("wait after stop should return nil")
	}
	if timer.current(IdleMsg{Gen: timer.gen}) {
		t.Error("stopped timer has no current generation")
	}
}

func TestIdleTimerDisabled(t *testing.T) {
	timer := newIdleTimer(0)
	timer.arm()
	if timer.wait() != nil {
		t.Error("zero delay should disable the timer")
	}

	var none *idleTimer
	none.arm()
	none.stop()
	if none.wait() != nil {
		t.Error("nil timer should never wait")
	}
}
