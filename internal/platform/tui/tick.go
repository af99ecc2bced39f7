// Package tui provides the Bubble Tea integration for battleship.
// It handles the terminal UI loop, input mapping, match history screens and
// the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Input polling bounds. A turn-based board only needs to feel responsive,
// so rates outside this range are pulled back into it.
const (
	minTickRate = 5
	maxTickRate = 60
)

// TickMsg asks the model to feed the buffered input frame to the match.
type TickMsg struct {
	At time.Time
}

// tickInterval converts a ticks-per-second setting into a delay between ticks.
func tickInterval(tickRate int) time.Duration {
	switch {
	case tickRate < minTickRate:
		tickRate = minTickRate
	case tickRate > maxTickRate:
		tickRate = maxTickRate
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}
