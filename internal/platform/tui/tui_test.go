package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testEnv(t *testing.T, withStore bool) *Env {
	t.Helper()
	env := &Env{Config: config.DefaultMazeConfig(), Seed: 42, Player: "tester"}
	if withStore {
		store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("storage.Open: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		env.Store = store
	}
	return env
}

func TestPlayKeyMapDirections(t *testing.T) {
	keys := DefaultPlayKeyMap()

	tests := []struct {
		msg tea.KeyMsg
		dir maze.Dir
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, maze.DirUp},
		{runeKey('w'), maze.DirUp},
		{runeKey('k'), maze.DirUp},
		{tea.KeyMsg{Type: tea.KeyDown}, maze.DirDown},
		{runeKey('s'), maze.DirDown},
		{runeKey('j'), maze.DirDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, maze.DirLeft},
		{runeKey('a'), maze.DirLeft},
		{runeKey('h'), maze.DirLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, maze.DirRight},
		{runeKey('d'), maze.DirRight},
		{runeKey('l'), maze.DirRight},
	}
	for _, tc := range tests {
		dir, ok := keys.Direction(tc.msg)
		if !ok || dir != tc.dir {
			t.Errorf("Direction(%q) = %s, %v; expected %s", tc.msg.String(), dir, ok, tc.dir)
		}
	}

	if _, ok := keys.Direction(runeKey('n')); ok {
		t.Error("'n' should not be a direction")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.action {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.action)
		}
	}
}

func TestRenderMaze(t *testing.T) {
	res, err := maze.Generate(maze.DifficultyEasy, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	g, _ := game.New(res, maze.DifficultyEasy)

	out := RenderMaze(g.Snapshot())
	lines := strings.Split(out, "\n")
	if len(lines) != res.Grid.N {
		t.Fatalf("rendered %d lines, expected %d", len(lines), res.Grid.N)
	}
	if !strings.Contains(out, cellGlyphs[kindPlayer]) {
		t.Error("player glyph missing")
	}
	if !strings.Contains(out, cellGlyphs[kindExit]) {
		t.Error("exit glyph missing")
	}
}

func TestMenuSelectsDifficulty(t *testing.T) {
	m := NewMenuModel(maze.DefaultSizes(), 80, 24)
	if len(m.items) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(m.items))
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamps at the last item
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := model.(MenuModel)
	if menu.Selected() == nil || menu.Selected().Difficulty != maze.DifficultyHard {
		t.Fatalf("expected hard selected, got %+v", menu.Selected())
	}
	if menu.Selected().Size != maze.SizeHard {
		t.Errorf("Size = %d, expected %d", menu.Selected().Size, maze.SizeHard)
	}
	if cmd == nil {
		t.Error("selection should end the menu program")
	}
	if !strings.Contains(menu.View(), "medium") {
		t.Error("menu view should list tiers")
	}
}

func TestPlayModelMoves(t *testing.T) {
	env := testEnv(t, false)
	m := NewPlayModel(env, maze.DifficultyEasy, 80, 30)
	if m.Round() == nil {
		t.Fatalf("no round: %v", m.err)
	}
	if m.Round().Seed != 42 {
		t.Errorf("first round seed %d, expected 42", m.Round().Seed)
	}

	for _, d := range maze.Dirs {
		before := m.Round().Game.Snapshot()
		canMove := before.Grid.IsOpen(before.Player.Step(d, 1))

		keyFor := map[maze.Dir]tea.KeyMsg{
			maze.DirUp:    {Type: tea.KeyUp},
			maze.DirDown:  {Type: tea.KeyDown},
			maze.DirLeft:  {Type: tea.KeyLeft},
			maze.DirRight: {Type: tea.KeyRight},
		}
		model, _ := m.Update(keyFor[d])
		m = model.(PlayModel)

		after := m.Round().Game.Snapshot()
		if canMove && after.Moves != before.Moves+1 {
			t.Errorf("%s: expected a move", d)
		}
		if !canMove && after.Moves != before.Moves {
			t.Errorf("%s: expected a blocked move", d)
		}
		if after.Status == game.StatusWon {
			break
		}
	}

	if !strings.Contains(m.View(), "Moves:") {
		t.Error("view should show the move counter")
	}
}

func TestPlayModelNewMaze(t *testing.T) {
	env := testEnv(t, true)
	m := NewPlayModel(env, maze.DifficultyMedium, 80, 30)
	first := m.Round()

	model, _ := m.Update(runeKey('n'))
	m = model.(PlayModel)

	if m.Round() == first {
		t.Fatal("'n' should start a new round")
	}
	if m.Round().MazeID == 0 || m.Round().MazeID == first.MazeID {
		t.Errorf("new round should be stored under a new ID, got %d (first %d)", m.Round().MazeID, first.MazeID)
	}

	mazes, err := env.Store.RecentMazes(10)
	if err != nil || len(mazes) != 2 {
		t.Errorf("expected 2 stored mazes, got %d (%v)", len(mazes), err)
	}
}

func TestPlayModelQuitAndBack(t *testing.T) {
	env := testEnv(t, false)

	m := NewPlayModel(env, maze.DifficultyEasy, 80, 30)
	model, cmd := m.Update(runeKey('q'))
	if !model.(PlayModel).IsQuitting() || cmd == nil {
		t.Error("'q' should quit")
	}

	m = NewPlayModel(env, maze.DifficultyEasy, 80, 30)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(PlayModel).BackToMenu() {
		t.Error("esc should return to the menu")
	}
}

func TestEnvRecordRun(t *testing.T) {
	env := testEnv(t, true)

	round, err := env.NewRound(maze.DifficultyEasy)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	if round.MazeID == 0 {
		t.Fatal("maze not stored")
	}

	// Walk toward any exit until won, using the game's own grid.
	snap := round.Game.Snapshot()
	for steps := 0; snap.Status != game.StatusWon && steps < 10000; steps++ {
		round.Game.Move(maze.Dirs[steps%4])
		if steps%7 == 0 {
			round.Game.Move(maze.Dirs[(steps/7)%4])
		}
		snap = round.Game.Snapshot()
	}
	env.RecordRun(round)

	best, err := env.Store.BestRuns(maze.DifficultyEasy, 10)
	if err != nil {
		t.Fatalf("BestRuns: %v", err)
	}
	if snap.Status == game.StatusWon {
		if len(best) != 1 || best[0].Player != "tester" || best[0].Moves != snap.Moves {
			t.Errorf("unexpected best runs %+v", best)
		}
	} else if len(best) != 0 {
		t.Errorf("unfinished run listed as best: %+v", best)
	}

	if env.Session == "" {
		t.Fatal("recording a run should assign a session")
	}
	runs, err := env.Store.SessionRuns(env.Session)
	if err != nil {
		t.Fatalf("SessionRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].MazeID != round.MazeID {
		t.Errorf("unexpected session runs %+v", runs)
	}
}

func TestSessionFlow(t *testing.T) {
	env := testEnv(t, true)

	var model tea.Model = NewSessionModel(env, 100, 40)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := model.(SessionModel)
	if s.screen != screenPlay || s.play == nil {
		t.Fatalf("enter should open the play screen, got screen %d", s.screen)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = model.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("esc should return to the menu, got screen %d", s.screen)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = model.(SessionModel)
	if s.screen != screenHistory {
		t.Fatalf("tab should open history, got screen %d", s.screen)
	}
	if len(s.history.Shown()) != 1 {
		t.Errorf("history should list the maze just played, got %d", len(s.history.Shown()))
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = model.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("esc should leave history, got screen %d", s.screen)
	}

	model, cmd := model.Update(runeKey('q'))
	if !model.(SessionModel).quitting || cmd == nil {
		t.Error("'q' on the menu should quit the session")
	}
}

func TestHistoryFilters(t *testing.T) {
	env := testEnv(t, true)
	for _, d := range []maze.Difficulty{maze.DifficultyEasy, maze.DifficultyHard, maze.DifficultyHard} {
		if _, err := env.NewRound(d); err != nil {
			t.Fatalf("NewRound: %v", err)
		}
	}

	m := NewHistoryModel(env.Store, 100, 40)
	expected := []int{3, 1, 0, 2} // all, easy, medium, hard
	for i, want := range expected {
		if got := len(m.Shown()); got != want {
			t.Errorf("filter %s: %d mazes, expected %d", filterTitle(historyFilters[i]), got, want)
		}
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = model.(HistoryModel)
	}

	if !strings.Contains(m.View(), "MAZE HISTORY") {
		t.Error("history view missing title")
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	if len(m.Shown()) != 0 {
		t.Error("expected no rows without a store")
	}
	if !strings.Contains(m.View(), "no database") {
		t.Error("view should explain missing database")
	}
}
