// Package tui hosts the game in a terminal with Bubble Tea, locally or over
// SSH. It maps keys and mouse taps to actions, paces frames, journals runs
// and draws the screen buffer with lipgloss.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen names the game
// session whose tick chain sent it.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var generations atomic.Uint64

// nextGeneration returns a tick generation no earlier session used.
func nextGeneration() uint64 {
	return generations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for gen after a
// frame at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
