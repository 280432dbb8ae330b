// Package tui provides the Bubble Tea integration for falldown.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Loop identifies the model
// that scheduled it, so a screen switch never leaves two tick chains running.
type TickMsg struct {
	At   time.Time
	Loop int64
}

var loops atomic.Int64

// newLoop returns a fresh tick loop ID.
func newLoop() int64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
