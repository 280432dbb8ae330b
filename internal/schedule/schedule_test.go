package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAfterFires(t *testing.T) {
	done := make(chan struct{})
	h := After(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
	if !h.Fired() {
		t.Error("Fired should be true after the callback ran")
	}
	if h.Cancel() {
		t.Error("Cancel after firing should report false")
	}
	if h.Canceled() {
		t.Error("a fired handle is not canceled")
	}
}

func TestCancelBeforeFiring(t *testing.T) {
	var calls atomic.Int32
	h := After(50*time.Millisecond, func() { calls.Add(1) })

	if !h.Cancel() {
		t.Fatal("first Cancel should stop the callback")
	}
	if h.Cancel() {
		t.Error("second Cancel should be a no-op")
	}
	time.Sleep(100 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("callback ran %d times after Cancel", calls.Load())
	}
	if h.Fired() || !h.Canceled() {
		t.Errorf("Fired=%v Canceled=%v, want false/true", h.Fired(), h.Canceled())
	}
}

func TestCancelRacingTimer(t *testing.T) {
	for range 100 {
		var calls atomic.Int32
		h := After(0, func() { calls.Add(1) })
		stopped := h.Cancel()
		time.Sleep(time.Millisecond)

		if stopped && calls.Load() != 0 {
			t.Fatal("callback ran although Cancel reported success")
		}
		if calls.Load() > 1 {
			t.Fatalf("callback ran %d times", calls.Load())
		}
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	if h.Cancel() || h.Fired() || h.Canceled() {
		t.Error("nil handle should report nothing")
	}
}

func TestNilCallback(t *testing.T) {
	h := After(0, nil)
	deadline := time.Now().Add(time.Second)
	for !h.Fired() {
		if time.Now().After(deadline) {
			t.Fatal("nil callback never marked fired")
		}
		time.Sleep(time.Millisecond)
	}
}
