package maze

import (
	"fmt"
	"strings"
)

// Cell is the state of a single grid cell.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// Characters used by String and ParseGrid.
const (
	WallChar = '#'
	OpenChar = '.'
)

// Grid is an N×N board stored row-major: index = row*N + col.
// Row/col 0 and N-1 form the border ring.
type Grid struct {
	N     int
	Cells []Cell
}

// NewGrid creates an n×n grid with every cell set to Wall.
func NewGrid(n int) *Grid {
	g := &Grid{
		N:     n,
		Cells: make([]Cell, n*n),
	}
	for i := range g.Cells {
		g.Cells[i] = Wall
	}
	// Border ring is already Wall; mark it again so the invariant does not
	// depend on the fill above.
	for i := 0; i < n; i++ {
		g.Set(At(0, i), Wall)
		g.Set(At(n-1, i), Wall)
		g.Set(At(i, 0), Wall)
		g.Set(At(i, n-1), Wall)
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.N + c.Col
}

// InBounds returns true if c lies anywhere on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.N && c.Col >= 0 && c.Col < g.N
}

// IsInterior returns true for cells strictly inside the border ring.
func (g *Grid) IsInterior(c Coord) bool {
	return c.Row > 0 && c.Row < g.N-1 && c.Col > 0 && c.Col < g.N-1
}

// IsBorder returns true for cells on the outermost ring.
func (g *Grid) IsBorder(c Coord) bool {
	return g.InBounds(c) && !g.IsInterior(c)
}

// IsInnerRing returns true for interior cells adjacent to the border
// (row or col equal to 1 or N-2).
func (g *Grid) IsInnerRing(c Coord) bool {
	if !g.IsInterior(c) {
		return false
	}
	return c.Row == 1 || c.Row == g.N-2 || c.Col == 1 || c.Col == g.N-2
}

// At returns the cell at c. Out-of-bounds cells read as Wall.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Wall
	}
	return g.Cells[g.index(c)]
}

// IsOpen reports whether c is in bounds and Open.
func (g *Grid) IsOpen(c Coord) bool {
	return g.InBounds(c) && g.Cells[g.index(c)] == Open
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{N: g.N, Cells: cells}
}

// Equal returns true if both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.N != other.N {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// OpenCount returns the number of Open cells on the whole grid.
func (g *Grid) OpenCount() int {
	count := 0
	for _, cell := range g.Cells {
		if cell == Open {
			count++
		}
	}
	return count
}

// InteriorOpenCount returns the number of Open cells off the border ring.
func (g *Grid) InteriorOpenCount() int {
	count := 0
	for r := 1; r < g.N-1; r++ {
		for c := 1; c < g.N-1; c++ {
			if g.Cells[r*g.N+c] == Open {
				count++
			}
		}
	}
	return count
}

// BorderCells returns the border ring without its four corners, ordered
// top, bottom, left, right.
func (g *Grid) BorderCells() []Coord {
	cells := make([]Coord, 0, 4*(g.N-2))
	for i := 1; i < g.N-1; i++ {
		cells = append(cells, At(0, i), At(g.N-1, i), At(i, 0), At(i, g.N-1))
	}
	return cells
}

// BorderOpenCells returns every Open cell on the border ring, corners included.
func (g *Grid) BorderOpenCells() []Coord {
	var open []Coord
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			pos := At(r, c)
			if g.IsBorder(pos) && g.At(pos) == Open {
				open = append(open, pos)
			}
		}
	}
	return open
}

// BorderOpenCount returns the number of Open cells on the border ring.
func (g *Grid) BorderOpenCount() int {
	return len(g.BorderOpenCells())
}

// Reachable returns every Open cell connected to from through Open cells
// (4-neighborhood). Returns nil if from is not Open.
func (g *Grid) Reachable(from Coord) map[Coord]bool {
	if !g.IsOpen(from) {
		return nil
	}
	seen := map[Coord]bool{from: true}
	queue := []Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			next := cur.Step(d, 1)
			if seen[next] || !g.IsOpen(next) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

// HasOpenSquare reports whether any 2×2 block is entirely Open.
func (g *Grid) HasOpenSquare() bool {
	for r := 0; r < g.N-1; r++ {
		for c := 0; c < g.N-1; c++ {
			if g.IsOpen(At(r, c)) && g.IsOpen(At(r+1, c)) &&
				g.IsOpen(At(r, c+1)) && g.IsOpen(At(r+1, c+1)) {
				return true
			}
		}
	}
	return false
}

// String renders the grid one row per line: '#' for Wall, '.' for Open.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.N*g.N + g.N)
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			if g.Cells[r*g.N+c] == Open {
				sb.WriteRune(OpenChar)
			} else {
				sb.WriteRune(WallChar)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Rows returns the grid as one string per row, the form used by YAML export.
func (g *Grid) Rows() []string {
	return strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
}

// ParseGrid reads the format produced by String. Rows must all have the same
// length as the number of rows.
func ParseGrid(s string) (*Grid, error) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	n := len(lines)
	if n < MinSize {
		return nil, invalidArgument(fmt.Sprintf("grid has %d rows, need at least %d", n, MinSize))
	}
	g := &Grid{N: n, Cells: make([]Cell, n*n)}
	for r, line := range lines {
		if len(line) != n {
			return nil, invalidArgument(fmt.Sprintf("row %d has length %d, want %d", r, len(line), n))
		}
		for c, ch := range line {
			switch ch {
			case WallChar:
				g.Cells[r*n+c] = Wall
			case OpenChar:
				g.Cells[r*n+c] = Open
			default:
				return nil, invalidArgument(fmt.Sprintf("unexpected %q at %v", ch, At(r, c)))
			}
		}
	}
	return g, nil
}
