package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the tier sidebar
	sidebarWidth       = 22  // Width of tier sidebar
	maxHistory         = 100 // Max mazes to load
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTier key.Binding
	PrevTier key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTier, k.PrevTier, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTier, k.PrevTier},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTier: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tier"),
		),
		PrevTier: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tier"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyFilters are the tabs; DifficultyNone shows every tier.
var historyFilters = []maze.Difficulty{
	maze.DifficultyNone,
	maze.DifficultyEasy,
	maze.DifficultyMedium,
	maze.DifficultyHard,
}

func filterTitle(d maze.Difficulty) string {
	if d == maze.DifficultyNone {
		return "All"
	}
	return strings.ToUpper(d.String()[:1]) + d.String()[1:]
}

// HistoryModel is the Bubble Tea model for browsing stored mazes.
type HistoryModel struct {
	store       *storage.Store
	mazes       []storage.MazeRecord // every loaded maze, newest first
	shown       []storage.MazeRecord // mazes matching the current filter
	stats       *storage.DifficultyStats
	filter      int
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	loadErr     error
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history model and loads recent mazes.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Tier", Width: 8},
		{Title: "Size", Width: 6},
		{Title: "Seed", Width: 20},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads recent mazes from storage and applies the current filter.
func (m *HistoryModel) load() {
	if m.store == nil {
		m.mazes = nil
		m.applyFilter()
		return
	}

	mazes, err := m.store.RecentMazes(maxHistory)
	m.loadErr = err
	m.mazes = mazes
	m.applyFilter()
}

// applyFilter narrows the loaded mazes to the selected tier.
func (m *HistoryModel) applyFilter() {
	d := historyFilters[m.filter]

	shown := make([]storage.MazeRecord, 0, len(m.mazes))
	for _, rec := range m.mazes {
		if d == maze.DifficultyNone || rec.Difficulty == d {
			shown = append(shown, rec)
		}
	}
	m.shown = shown

	m.stats = nil
	if m.store != nil && d != maze.DifficultyNone {
		if stats, err := m.store.Stats(d); err == nil {
			m.stats = stats
		}
	}

	m.updateTableRows()
}

// updateTableRows updates the table with the filtered mazes.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.shown))
	for i, rec := range m.shown {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", rec.ID),
			rec.Difficulty.String(),
			fmt.Sprintf("%dx%d", rec.Grid.N, rec.Grid.N),
			fmt.Sprintf("%d", rec.Seed),
			rec.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTier):
			m.filter = (m.filter + 1) % len(historyFilters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevTier):
			m.filter--
			if m.filter < 0 {
				m.filter = len(historyFilters) - 1
			}
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("MAZE HISTORY - %s", filterTitle(historyFilters[m.filter]))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the tier list and stats beside the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Tiers\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, d := range historyFilters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.filter {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + filterTitle(d)))
		sidebar.WriteString("\n")
	}

	if stats := m.renderStats(); stats != "" {
		sidebar.WriteString("\n")
		sidebar.WriteString(stats)
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders tier tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyFilters))
	for i, d := range historyFilters {
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(filterTitle(d))
		} else {
			tabs[i] = tabStyle.Render(" " + filterTitle(d) + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	if stats := m.renderStats(); stats != "" {
		b.WriteString("\n")
		b.WriteString(stats)
	}

	return b.String()
}

// renderStats summarizes runs for the selected tier.
func (m HistoryModel) renderStats() string {
	if m.stats == nil {
		return ""
	}
	best := "-"
	if m.stats.BestMoves > 0 {
		best = fmt.Sprintf("%d moves", m.stats.BestMoves)
	}
	return fmt.Sprintf("Mazes: %d\nRuns: %d (%d won)\nBest: %s",
		m.stats.Mazes, m.stats.Runs, m.stats.Completed, best)
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable:\nno database is open.")
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load history:\n%v", m.loadErr))
	case len(m.shown) == 0:
		return emptyStyle.Render("No mazes recorded yet.\nPlay one to start your history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// Shown returns the mazes listed under the current filter.
func (m HistoryModel) Shown() []storage.MazeRecord {
	return m.shown
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
