package maze

import "fmt"

// Coord is a (row, col) cell position, 0-indexed.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Step returns c moved n cells in direction d.
func (c Coord) Step(d Dir, n int) Coord {
	dr, dc := d.Delta()
	return c.Add(dr*n, dc*n)
}

// Midpoint returns the cell halfway between c and other.
// Only meaningful for cells two steps apart on one axis.
func (c Coord) Midpoint(other Coord) Coord {
	return Coord{Row: (c.Row + other.Row) / 2, Col: (c.Col + other.Col) / 2}
}

// Dir is one of the four axis directions.
type Dir int

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Dirs lists all four directions in a fixed order.
var Dirs = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the (row, col) unit offset for d.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	}
	return 0, 0
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// coordBuf is a fixed-capacity candidate list for neighbor selection.
type coordBuf struct {
	items [4]Coord
	n     int
}

func (b *coordBuf) push(c Coord) {
	b.items[b.n] = c
	b.n++
}

func (b *coordBuf) len() int {
	return b.n
}

// pick draws one candidate uniformly. The buffer must be non-empty.
func (b *coordBuf) pick(src Source) Coord {
	return b.items[src.IntN(b.n)]
}
