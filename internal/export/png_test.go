package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func generated(t *testing.T) *maze.Result {
	t.Helper()
	res, err := maze.Generate(maze.DifficultyEasy, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return res
}

func center(c maze.Coord, size int) (int, int) {
	return c.Col*size + size/2, c.Row*size + size/2
}

func TestImageBoundsAndColors(t *testing.T) {
	res := generated(t)
	const size = 8

	pic, err := Image(res, size)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	want := res.Grid.N * size
	if b := pic.Bounds(); b.Dx() != want || b.Dy() != want {
		t.Fatalf("bounds %v, expected %dx%d", b, want, want)
	}

	x, y := center(maze.At(0, 0), size)
	if got := pic.RGBAAt(x, y); got != WallColor {
		t.Errorf("corner pixel %v, expected wall %v", got, WallColor)
	}

	x, y = center(res.Start, size)
	if got := pic.RGBAAt(x, y); got != StartColor {
		t.Errorf("start pixel %v, expected %v", got, StartColor)
	}

	checked := false
	for r := 1; r < res.Grid.N-1 && !checked; r++ {
		for c := 1; c < res.Grid.N-1; c++ {
			cell := maze.At(r, c)
			if cell == res.Start || !res.Grid.IsOpen(cell) {
				continue
			}
			x, y = center(cell, size)
			if got := pic.RGBAAt(x, y); got != OpenColor {
				t.Errorf("open pixel at %s is %v, expected %v", cell, got, OpenColor)
			}
			checked = true
			break
		}
	}
	if !checked {
		t.Fatal("no open interior cell besides start")
	}
}

func TestImageRejectsBadInput(t *testing.T) {
	if _, err := Image(nil, DefaultCellSize); err == nil {
		t.Error("expected error for nil result")
	}
	if _, err := Image(generated(t), 2); err == nil {
		t.Error("expected error for tiny cell size")
	}
}

func TestWritePNGDecodes(t *testing.T) {
	res := generated(t)

	var buf bytes.Buffer
	if err := WritePNG(&buf, res, DefaultCellSize); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := res.Grid.N * DefaultCellSize; cfg.Width != want || cfg.Height != want {
		t.Errorf("png is %dx%d, expected %d", cfg.Width, cfg.Height, want)
	}
}
