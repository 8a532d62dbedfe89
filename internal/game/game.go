// Package game holds the play state for one finished maze: the player's
// position, move count, and the observers that redraw when it changes.
// Generation never emits events; this package is the only source of them.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Status is the state of a round.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
)

func (s Status) String() string {
	if s == StatusWon {
		return "won"
	}
	return "playing"
}

// Game is a single round on a generated maze. It is safe for concurrent use.
type Game struct {
	mu sync.Mutex

	grid       *maze.Grid
	difficulty maze.Difficulty
	start      maze.Coord
	player     maze.Coord
	visited    map[maze.Coord]bool
	moves      int
	status     Status

	clock      func() time.Time
	startedAt  time.Time
	finishedAt time.Time

	observers map[int]Observer
	nextObsID int
}

// Option configures a Game.
type Option func(*Game)

// WithClock overrides time.Now for elapsed-time tracking.
func WithClock(clock func() time.Time) Option {
	return func(g *Game) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// New starts a round on res. The grid is copied, so the caller may keep
// using res. The player starts on the carving start cell.
func New(res *maze.Result, d maze.Difficulty, opts ...Option) (*Game, error) {
	if res == nil || res.Grid == nil {
		return nil, errors.New("game: nil maze")
	}
	if !res.Grid.IsOpen(res.Start) {
		return nil, errors.New("game: start cell is not open")
	}

	g := &Game{
		grid:       res.Grid.Clone(),
		difficulty: d,
		start:      res.Start,
		player:     res.Start,
		visited:    map[maze.Coord]bool{res.Start: true},
		clock:      time.Now,
		observers:  make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.startedAt = g.clock()
	return g, nil
}

// Move steps the player one cell in d. It returns false, and changes
// nothing, if the target is a wall, off the grid, or the round is over.
// Stepping onto an open border cell wins the round.
func (g *Game) Move(d maze.Dir) bool {
	g.mu.Lock()
	if g.status != StatusPlaying {
		g.mu.Unlock()
		return false
	}

	from := g.player
	to := from.Step(d, 1)
	if !g.grid.IsOpen(to) {
		g.mu.Unlock()
		return false
	}

	g.player = to
	g.visited[to] = true
	g.moves++

	events := []Event{{Kind: EventMoved, From: from, To: to, Moves: g.moves}}
	if g.grid.IsBorder(to) {
		g.status = StatusWon
		g.finishedAt = g.clock()
		events = append(events, Event{
			Kind:    EventWon,
			From:    from,
			To:      to,
			Moves:   g.moves,
			Elapsed: g.finishedAt.Sub(g.startedAt),
		})
	}
	observers := g.snapshotObservers()
	g.mu.Unlock()

	for _, ev := range events {
		for _, o := range observers {
			o.GridChanged(ev)
		}
	}
	return true
}

// Restart puts the player back on the start cell and clears progress.
func (g *Game) Restart() {
	g.mu.Lock()
	from := g.player
	g.player = g.start
	g.visited = map[maze.Coord]bool{g.start: true}
	g.moves = 0
	g.status = StatusPlaying
	g.startedAt = g.clock()
	g.finishedAt = time.Time{}
	observers := g.snapshotObservers()
	g.mu.Unlock()

	ev := Event{Kind: EventRestarted, From: from, To: g.start}
	for _, o := range observers {
		o.GridChanged(ev)
	}
}

// Subscribe registers o for change events and returns a func that removes it.
func (g *Game) Subscribe(o Observer) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextObsID
	g.nextObsID++
	g.observers[id] = o

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.observers, id)
			g.mu.Unlock()
		})
	}
}

// snapshotObservers copies the observer set in registration order.
// Caller must hold g.mu.
func (g *Game) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(g.observers))
	for id := 0; id < g.nextObsID; id++ {
		if o, ok := g.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Status returns the current round status.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Moves returns the number of successful moves.
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Difficulty returns the tier the maze was generated for.
func (g *Game) Difficulty() maze.Difficulty {
	return g.difficulty
}

// Elapsed returns time since the round started, frozen once it is won.
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elapsed()
}

func (g *Game) elapsed() time.Duration {
	if g.status == StatusWon {
		return g.finishedAt.Sub(g.startedAt)
	}
	return g.clock().Sub(g.startedAt)
}

// Snapshot returns a copy of the round state for rendering.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	visited := make(map[maze.Coord]bool, len(g.visited))
	for c := range g.visited {
		visited[c] = true
	}
	return Snapshot{
		Grid:       g.grid.Clone(),
		Difficulty: g.difficulty,
		Start:      g.start,
		Player:     g.player,
		Exits:      g.grid.BorderOpenCells(),
		Visited:    visited,
		Moves:      g.moves,
		Status:     g.status,
		Elapsed:    g.elapsed(),
	}
}

// Snapshot is a read-only view of a round.
type Snapshot struct {
	Grid       *maze.Grid
	Difficulty maze.Difficulty
	Start      maze.Coord
	Player     maze.Coord
	Exits      []maze.Coord
	Visited    map[maze.Coord]bool
	Moves      int
	Status     Status
	Elapsed    time.Duration
}

// IsExit reports whether c is an open border cell.
func (s Snapshot) IsExit(c maze.Coord) bool {
	for _, e := range s.Exits {
		if e == c {
			return true
		}
	}
	return false
}
