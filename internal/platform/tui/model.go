package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// statusFeed collects round events from the game observer so the value-typed
// model can show them.
type statusFeed struct {
	last game.Event
	seen bool
}

func (f *statusFeed) GridChanged(ev game.Event) {
	f.last = ev
	f.seen = true
}

// PlayModel is the Bubble Tea model for playing one maze after another at a
// fixed difficulty.
type PlayModel struct {
	env         *Env
	difficulty  maze.Difficulty
	round       *Round
	feed        *statusFeed
	unsubscribe func()
	keys        PlayKeyMap
	help        help.Model
	width       int
	height      int
	err         error
	runSaved    bool
	quitting    bool
	backToMenu  bool
}

// NewPlayModel generates the first maze for d.
func NewPlayModel(env *Env, d maze.Difficulty, width, height int) PlayModel {
	h := help.New()
	h.Width = width

	m := PlayModel{
		env:        env,
		difficulty: d,
		keys:       DefaultPlayKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}
	m.newRound()
	return m
}

// newRound swaps in a fresh maze, recording the abandoned one first.
func (m *PlayModel) newRound() {
	m.finishRound()

	round, err := m.env.NewRound(m.difficulty)
	if err != nil {
		m.env.logger().Error("could not generate maze", "difficulty", m.difficulty, "error", err)
		m.err = err
		m.round = nil
		return
	}

	m.err = nil
	m.round = round
	m.runSaved = false
	m.feed = &statusFeed{}
	m.unsubscribe = round.Game.Subscribe(m.feed)
}

// finishRound saves an unsaved run and detaches the observer.
func (m *PlayModel) finishRound() {
	if m.round == nil {
		return
	}
	if !m.runSaved && m.round.Game.Moves() > 0 {
		m.env.RecordRun(m.round)
		m.runSaved = true
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init starts the clock.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(clockInterval)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tickCmd(clockInterval)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRound()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.finishRound()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.newRound()
		return m, nil
	}

	if m.round == nil {
		return m, nil
	}

	if key.Matches(msg, m.keys.Restart) {
		m.finishRound()
		m.runSaved = false
		m.unsubscribe = m.round.Game.Subscribe(m.feed)
		m.round.Game.Restart()
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.round.Game.Move(dir)
		if m.round.Game.Status() == game.StatusWon && !m.runSaved {
			m.env.RecordRun(m.round)
			m.runSaved = true
		}
	}
	return m, nil
}

// View renders the maze with a status line and help bar.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")

	if m.round == nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(centerText(errStyle.Render(fmt.Sprintf("Could not build a maze: %v", m.err)), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(dimStyle.Render("n: try again  |  esc: menu  |  q: quit"), m.width))
		return b.String()
	}

	snap := m.round.Game.Snapshot()
	title := fmt.Sprintf("M A Z E  ·  %s %dx%d", strings.ToUpper(snap.Difficulty.String()), snap.Grid.N, snap.Grid.N)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	board := RenderMaze(snap)
	for _, line := range strings.Split(board, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centerText(m.statusLine(snap), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

func (m PlayModel) statusLine(snap game.Snapshot) string {
	elapsed := snap.Elapsed.Truncate(100 * time.Millisecond)
	stats := fmt.Sprintf("Moves: %d  |  Time: %s  |  Seed: %d", snap.Moves, elapsed, m.round.Seed)

	if snap.Status == game.StatusWon {
		winStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		return winStyle.Render("You escaped!  ") + stats + winStyle.Render("  (n: next maze)")
	}
	if m.feed != nil && m.feed.seen && m.feed.last.Kind == game.EventRestarted {
		return "Back at the start  |  " + stats
	}
	return stats
}

// Round returns the current round, or nil if generation failed.
func (m PlayModel) Round() *Round {
	return m.round
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay starts a Bubble Tea program on the play screen.
func RunPlay(env *Env, d maze.Difficulty, width, height int) error {
	p := tea.NewProgram(
		NewPlayModel(env, d, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
