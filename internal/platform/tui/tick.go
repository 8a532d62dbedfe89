// Package tui provides the Bubble Tea screens for the maze game: the
// difficulty menu, the play screen, the history table, and the Wish SSH
// server that serves them remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg refreshes the elapsed-time display on the play screen.
type TickMsg time.Time

// clockInterval is how often the play screen redraws its timer.
const clockInterval = 200 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
