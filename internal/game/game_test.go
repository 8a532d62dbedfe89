package game

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// testMaze has a single exit at (5,1); the shortest route from (3,4) is
// up, up, left x3, down x4.
const testMaze = `######
#....#
#.##.#
#.#..#
#.####
#.####
`

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	grid, err := maze.ParseGrid(testMaze)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	g, err := New(&maze.Result{Grid: grid, Start: maze.At(3, 4)}, maze.DifficultyEasy, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

var winningPath = []maze.Dir{
	maze.DirUp, maze.DirUp,
	maze.DirLeft, maze.DirLeft, maze.DirLeft,
	maze.DirDown, maze.DirDown, maze.DirDown, maze.DirDown,
}

// fakeClock advances by step on every call.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(nil, maze.DifficultyEasy); err == nil {
		t.Error("expected error for nil result")
	}

	grid := maze.NewGrid(6)
	if _, err := New(&maze.Result{Grid: grid, Start: maze.At(2, 2)}, maze.DifficultyEasy); err == nil {
		t.Error("expected error for walled start")
	}
}

func TestNewCopiesGrid(t *testing.T) {
	grid, _ := maze.ParseGrid(testMaze)
	g, err := New(&maze.Result{Grid: grid, Start: maze.At(3, 4)}, maze.DifficultyEasy)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	grid.Set(maze.At(2, 4), maze.Wall)
	if !g.Move(maze.DirUp) {
		t.Error("game should not see changes to the caller's grid")
	}
}

func TestMoveBlockedByWalls(t *testing.T) {
	g := newTestGame(t)

	tests := []struct {
		dir maze.Dir
		ok  bool
	}{
		{maze.DirRight, false}, // (3,5) border wall
		{maze.DirDown, false},  // (4,4) wall
		{maze.DirLeft, true},   // (3,3) open
		{maze.DirLeft, false},  // (3,2) wall
		{maze.DirRight, true},
	}
	for i, tc := range tests {
		if got := g.Move(tc.dir); got != tc.ok {
			t.Errorf("step %d: Move(%s) = %v, expected %v", i, tc.dir, got, tc.ok)
		}
	}
	if g.Moves() != 2 {
		t.Errorf("Moves = %d, expected 2", g.Moves())
	}
	if g.Snapshot().Player != maze.At(3, 4) {
		t.Errorf("player at %v, expected (3,4)", g.Snapshot().Player)
	}
}

func TestWinOnBorder(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: time.Second}
	g := newTestGame(t, WithClock(clock.Now))

	for i, d := range winningPath {
		if g.Status() == StatusWon {
			t.Fatalf("won early at step %d", i)
		}
		if !g.Move(d) {
			t.Fatalf("step %d: Move(%s) blocked", i, d)
		}
	}

	if g.Status() != StatusWon {
		t.Fatalf("Status = %s, expected won", g.Status())
	}
	if g.Moves() != len(winningPath) {
		t.Errorf("Moves = %d, expected %d", g.Moves(), len(winningPath))
	}

	// Finished rounds ignore input.
	if g.Move(maze.DirUp) {
		t.Error("Move after win should fail")
	}

	// Elapsed freezes at the winning move.
	first := g.Elapsed()
	if first <= 0 {
		t.Errorf("Elapsed = %v, expected positive", first)
	}
	if again := g.Elapsed(); again != first {
		t.Errorf("Elapsed changed after win: %v then %v", first, again)
	}
}

func TestObserverReceivesEvents(t *testing.T) {
	g := newTestGame(t)

	var events []Event
	unsubscribe := g.Subscribe(ObserverFunc(func(ev Event) {
		events = append(events, ev)
	}))

	g.Move(maze.DirRight) // blocked, no event
	for _, d := range winningPath {
		g.Move(d)
	}

	if len(events) != len(winningPath)+1 {
		t.Fatalf("got %d events, expected %d", len(events), len(winningPath)+1)
	}
	if events[0].Kind != EventMoved || events[0].From != maze.At(3, 4) || events[0].To != maze.At(2, 4) {
		t.Errorf("first event %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Kind != EventWon || last.To != maze.At(5, 1) || last.Moves != len(winningPath) {
		t.Errorf("last event %+v, expected win at (5,1)", last)
	}

	unsubscribe()
	unsubscribe() // second call is a no-op
	g.Restart()
	if len(events) != len(winningPath)+1 {
		t.Error("unsubscribed observer still notified")
	}
}

func TestObserverMayReadGame(t *testing.T) {
	g := newTestGame(t)

	var seen int
	g.Subscribe(ObserverFunc(func(Event) {
		seen = g.Snapshot().Moves
	}))

	g.Move(maze.DirUp)
	if seen != 1 {
		t.Errorf("observer saw %d moves, expected 1", seen)
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t)
	for _, d := range winningPath {
		g.Move(d)
	}

	var got Event
	g.Subscribe(ObserverFunc(func(ev Event) { got = ev }))
	g.Restart()

	snap := g.Snapshot()
	if snap.Status != StatusPlaying || snap.Moves != 0 || snap.Player != maze.At(3, 4) {
		t.Errorf("restart left state %+v", snap)
	}
	if len(snap.Visited) != 1 {
		t.Errorf("Visited has %d cells, expected 1", len(snap.Visited))
	}
	if got.Kind != EventRestarted || got.From != maze.At(5, 1) {
		t.Errorf("restart event %+v", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t)
	snap := g.Snapshot()

	snap.Grid.Set(maze.At(2, 4), maze.Wall)
	snap.Visited[maze.At(1, 1)] = true

	if !g.Move(maze.DirUp) {
		t.Error("editing a snapshot grid changed the game")
	}
	if g.Snapshot().Visited[maze.At(1, 1)] {
		t.Error("editing snapshot visited set changed the game")
	}
	if !snap.IsExit(maze.At(5, 1)) || snap.IsExit(maze.At(3, 4)) {
		t.Errorf("IsExit wrong for exits %v", snap.Exits)
	}
}

func TestPlaysGeneratedMaze(t *testing.T) {
	res, err := maze.Generate(maze.DifficultyMedium, 17)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	g, err := New(res, maze.DifficultyMedium)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := g.Snapshot()
	if snap.Player != res.Start || snap.Difficulty != maze.DifficultyMedium {
		t.Errorf("snapshot %+v does not match result", snap)
	}
	if len(snap.Exits) < 1 || len(snap.Exits) > 2 {
		t.Errorf("expected 1 or 2 exits, got %v", snap.Exits)
	}
}

func TestConcurrentMoves(t *testing.T) {
	g := newTestGame(t)
	g.Subscribe(ObserverFunc(func(Event) {}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				g.Move(maze.Dirs[j%4])
				g.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := g.Snapshot()
	if !snap.Grid.IsOpen(snap.Player) {
		t.Errorf("player ended on a wall at %v", snap.Player)
	}
}
