package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenHistory
)

// SessionModel manages the full flow of one terminal session:
// menu -> play -> menu, with the history table reachable from the menu.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	env      *Env
	screen   screen
	menu     MenuModel
	play     *PlayModel
	history  *HistoryModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session that opens on the difficulty menu.
func NewSessionModel(env *Env, width, height int) SessionModel {
	return SessionModel{
		env:    env,
		menu:   NewMenuModel(env.Config.Sizes(), width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		history := NewHistoryModel(m.env.Store, m.width, m.height)
		m.history = &history
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		play := NewPlayModel(m.env, m.menu.Selected().Difficulty, m.width, m.height)
		m.play = &play
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when a maze is on screen.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = &playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateHistory handles updates on the history table.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.play = nil
	m.history = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.env.Config.Sizes(), m.width, m.height)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// RunSession starts a local Bubble Tea program on the menu.
func RunSession(env *Env, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(env, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
