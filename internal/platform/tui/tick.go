// Package tui provides the Bubble Tea integration for the snake platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one game frame. Chain identifies the model
// that scheduled it; a model ignores ticks from any other chain.
type TickMsg struct {
	Chain uint64
	Time  time.Time
}

var lastChain atomic.Uint64

// nextChain returns a tick chain id no other model holds.
func nextChain() uint64 {
	return lastChain.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for chain at the specified rate.
func tickCmd(chain uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Chain: chain, Time: t}
	})
}
