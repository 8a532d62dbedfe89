package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// cellKind is what a rendered cell shows, in drawing priority order.
type cellKind int

const (
	kindWall cellKind = iota
	kindOpen
	kindTrail
	kindStart
	kindExit
	kindPlayer
)

// cellGlyphs are two columns wide so cells look roughly square.
var cellGlyphs = map[cellKind]string{
	kindWall:   "██",
	kindOpen:   "  ",
	kindTrail:  "··",
	kindStart:  "<>",
	kindExit:   "[]",
	kindPlayer: "@@",
}

// cellStyles maps each cell kind to a lipgloss style.
var cellStyles = map[cellKind]lipgloss.Style{
	kindWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	kindOpen:   lipgloss.NewStyle(),
	kindTrail:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	kindStart:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	kindExit:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	kindPlayer: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
}

func classify(s game.Snapshot, c maze.Coord) cellKind {
	switch {
	case c == s.Player:
		return kindPlayer
	case s.Grid.At(c) == maze.Wall:
		return kindWall
	case s.IsExit(c):
		return kindExit
	case c == s.Start:
		return kindStart
	case s.Visited[c]:
		return kindTrail
	}
	return kindOpen
}

// RenderMaze draws a round as styled text, one grid row per line.
// Adjacent cells of the same kind share one style run to keep the number of
// ANSI escape sequences down.
func RenderMaze(s game.Snapshot) string {
	n := s.Grid.N
	var sb strings.Builder
	sb.Grow(n*n*4 + n)

	for row := 0; row < n; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < n {
			start := classify(s, maze.At(row, col))

			var run strings.Builder
			for col < n && classify(s, maze.At(row, col)) == start {
				run.WriteString(cellGlyphs[start])
				col++
			}
			sb.WriteString(cellStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
