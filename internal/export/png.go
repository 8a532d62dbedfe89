// Package export rasterizes generated mazes to PNG images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/yalue/image_utils"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// DefaultCellSize is the side of one maze cell in pixels.
const DefaultCellSize = 16

var (
	WallColor  = color.RGBA{30, 30, 40, 255}
	OpenColor  = color.RGBA{235, 235, 225, 255}
	StartColor = color.RGBA{40, 180, 70, 255}
	ExitColor  = color.RGBA{100, 120, 255, 255}
)

// Image draws res at cellSize pixels per cell. The start cell gets a
// filled marker and every open border cell an arrow pointing out of the maze.
func Image(res *maze.Result, cellSize int) (*image.RGBA, error) {
	if res == nil || res.Grid == nil {
		return nil, fmt.Errorf("export: nil maze")
	}
	if cellSize < 4 {
		return nil, fmt.Errorf("export: cell size %d too small", cellSize)
	}

	g := res.Grid
	base := image.NewRGBA(image.Rect(0, 0, g.N*cellSize, g.N*cellSize))
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			col := WallColor
			if g.IsOpen(maze.At(r, c)) {
				col = OpenColor
			}
			draw.Draw(base, cellRect(r, c, cellSize), image.NewUniform(col), image.Point{}, draw.Src)
		}
	}

	inset := cellSize / 4
	marker := cellRect(res.Start.Row, res.Start.Col, cellSize).Inset(inset)
	draw.Draw(base, marker, image.NewUniform(StartColor), image.Point{}, draw.Src)

	pic := image_utils.NewCompositeImage()
	if err := pic.AddImage(base, image.Pt(0, 0)); err != nil {
		return nil, fmt.Errorf("export: base layer: %w", err)
	}
	for _, exit := range g.BorderOpenCells() {
		arrow := image_utils.ResizeImage(exitArrow(g, exit), cellSize, cellSize)
		if err := pic.AddImage(arrow, cellRect(exit.Row, exit.Col, cellSize).Min); err != nil {
			return nil, fmt.Errorf("export: exit arrow at %s: %w", exit, err)
		}
	}
	return image_utils.ToRGBA(pic), nil
}

// WritePNG encodes the rendered maze to w.
func WritePNG(w io.Writer, res *maze.Result, cellSize int) error {
	pic, err := Image(res, cellSize)
	if err != nil {
		return err
	}
	if err := png.Encode(w, pic); err != nil {
		return fmt.Errorf("export: encoding png: %w", err)
	}
	return nil
}

func cellRect(row, col, size int) image.Rectangle {
	return image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
}

// Corners cannot be opened, so each exit sits on exactly one side.
func exitArrow(g *maze.Grid, c maze.Coord) image.Image {
	switch {
	case c.Row == 0:
		return image_utils.UpArrow(ExitColor)
	case c.Row == g.N-1:
		return image_utils.DownArrow(ExitColor)
	case c.Col == 0:
		return image_utils.LeftArrow(ExitColor)
	default:
		return image_utils.RightArrow(ExitColor)
	}
}
