package tui

import (
	"time"

	"github.com/vovakirdan/falldown/internal/core"
)

// Hold windows. The first press has to outlast the terminal's auto-repeat
// delay; later repeats arrive much faster.
const (
	DefaultHoldInitial = 500 * time.Millisecond
	DefaultHoldRepeat  = 100 * time.Millisecond
)

// HeldKeys turns terminal key presses into held directions. Terminals only
// report presses and auto-repeats, never releases, so a direction counts as
// held until no repeat arrived within the expected window.
type HeldKeys struct {
	initial int
	repeat  int

	dir   core.Direction
	until int
}

// NewHeldKeys creates a tracker measuring windows in ticks of tickRate.
func NewHeldKeys(tickRate int) HeldKeys {
	return HeldKeys{
		initial: ticksFor(DefaultHoldInitial, tickRate),
		repeat:  ticksFor(DefaultHoldRepeat, tickRate),
	}
}

func ticksFor(d time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := int(d * time.Duration(tickRate) / time.Second)
	return max(n, 1)
}

// Press records a press of dir at tick. Pressing the other direction
// replaces the held one.
func (h *HeldKeys) Press(dir core.Direction, tick int) {
	if dir == core.DirNone {
		return
	}
	if dir == h.dir && tick < h.until {
		h.until = max(h.until, tick+h.repeat)
		return
	}
	h.dir = dir
	h.until = tick + h.initial
}

// Release drops any held direction.
func (h *HeldKeys) Release() {
	h.dir = core.DirNone
	h.until = 0
}

// Current returns the direction held at tick.
func (h *HeldKeys) Current(tick int) core.Direction {
	if tick >= h.until {
		return core.DirNone
	}
	return h.dir
}

// Apply sets the held direction on frame.
func (h *HeldKeys) Apply(frame *core.InputFrame, tick int) {
	switch h.Current(tick) {
	case core.DirLeft:
		frame.Set(core.ActionLeft)
	case core.DirRight:
		frame.Set(core.ActionRight)
	}
}
