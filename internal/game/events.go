package game

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventMoved EventKind = iota
	EventWon
	EventRestarted
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventWon:
		return "won"
	case EventRestarted:
		return "restarted"
	}
	return "unknown"
}

// Event describes one change to a round.
type Event struct {
	Kind    EventKind
	From    maze.Coord
	To      maze.Coord
	Moves   int
	Elapsed time.Duration // Set on EventWon
}

// Observer is notified after the round changes. Calls happen outside the
// game's lock, so observers may read the game back.
type Observer interface {
	GridChanged(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// GridChanged calls f(ev).
func (f ObserverFunc) GridChanged(ev Event) {
	f(ev)
}
