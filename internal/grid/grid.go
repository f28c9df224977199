// Package grid partitions a drawing surface into rows and columns of equal tiles.
package grid

import (
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/jmylchreest/pixelize/internal/colour"
)

// ErrInvalidGeometry is returned when the requested grid cannot cover the surface.
var ErrInvalidGeometry = errors.New("invalid grid geometry")

// Tile is one cell of the output grid.
type Tile struct {
	// X is the column index, Y the row index.
	X, Y int

	// Colour is the resolved tile colour. It is Black until Resolve is called.
	Colour colour.RGB

	// Resolved reports whether sampling has assigned Colour.
	Resolved bool
}

// Resolve stores the sampled and reduced colour on the tile.
func (t *Tile) Resolve(c colour.RGB) {
	t.Colour = c
	t.Resolved = true
}

// Rect is a tile rectangle in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Line is a grid-line segment in surface coordinates.
type Line struct {
	X0, Y0, X1, Y1 float64
}

// Grid is a rows x columns partition of a width x height surface.
type Grid struct {
	Rows       int
	Columns    int
	Width      int
	Height     int
	TileWidth  float64
	TileHeight float64

	tiles []Tile
}

// Build creates a grid with the given row count over a width x height surface.
// The column count follows the surface aspect ratio: floor(rows * width / height).
func Build(rows, width, height int) (*Grid, error) {
	if rows < 1 {
		return nil, fmt.Errorf("%w: row count must be at least 1, got %d", ErrInvalidGeometry, rows)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface must be non-empty, got %dx%d", ErrInvalidGeometry, width, height)
	}

	columns := rows * width / height
	if columns < 1 {
		return nil, fmt.Errorf("%w: %d rows over a %dx%d surface leaves no columns", ErrInvalidGeometry, rows, width, height)
	}

	g := &Grid{
		Rows:       rows,
		Columns:    columns,
		Width:      width,
		Height:     height,
		TileWidth:  float64(width) / float64(columns),
		TileHeight: float64(height) / float64(rows),
		tiles:      make([]Tile, 0, rows*columns),
	}

	// Row-major: every column of row 0, then row 1.
	for y := range rows {
		for x := range columns {
			g.tiles = append(g.tiles, Tile{X: x, Y: y, Colour: colour.Black})
		}
	}

	return g, nil
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// At returns the tile at column x, row y.
func (g *Grid) At(x, y int) (*Tile, bool) {
	if x < 0 || x >= g.Columns || y < 0 || y >= g.Rows {
		return nil, false
	}
	return &g.tiles[y*g.Columns+x], true
}

// All returns an iterator over the tiles in row-major order.
// Yielded tiles may be mutated in place.
func (g *Grid) All() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for i := range g.tiles {
			if !yield(&g.tiles[i]) {
				return
			}
		}
	}
}

// Row returns an iterator over the tiles of row y.
func (g *Grid) Row(y int) iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		if y < 0 || y >= g.Rows {
			return
		}
		row := g.tiles[y*g.Columns : (y+1)*g.Columns]
		for i := range row {
			if !yield(&row[i]) {
				return
			}
		}
	}
}

// Colours returns an iterator over the tile colours in row-major order.
func (g *Grid) Colours() iter.Seq[colour.RGB] {
	return func(yield func(colour.RGB) bool) {
		for _, t := range g.tiles {
			if !yield(t.Colour) {
				return
			}
		}
	}
}

// Rect returns the tile rectangle used for sampling.
func (g *Grid) Rect(t *Tile) Rect {
	return Rect{
		X: float64(t.X) * g.TileWidth,
		Y: float64(t.Y) * g.TileHeight,
		W: g.TileWidth,
		H: g.TileHeight,
	}
}

// PixelBounds returns the integer pixel rectangle painted for a tile.
// Adjacent tiles share edges exactly, so the bounds of all tiles partition the surface.
func (g *Grid) PixelBounds(t *Tile) image.Rectangle {
	return image.Rect(
		t.X*g.Width/g.Columns,
		t.Y*g.Height/g.Rows,
		(t.X+1)*g.Width/g.Columns,
		(t.Y+1)*g.Height/g.Rows,
	)
}

// Lines returns the grid-line overlay: one horizontal line at the top of every
// row and one vertical line at the left of every column. The outer right and
// bottom edges are not included.
func (g *Grid) Lines() []Line {
	w, h := float64(g.Width), float64(g.Height)
	lines := make([]Line, 0, g.Rows+g.Columns)

	for i := range g.Rows {
		y := float64(i) * g.TileHeight
		lines = append(lines, Line{X0: 0, Y0: y, X1: w, Y1: y})
	}
	for i := range g.Columns {
		x := float64(i) * g.TileWidth
		lines = append(lines, Line{X0: x, Y0: 0, X1: x, Y1: h})
	}

	return lines
}

// Image returns a Columns x Rows image holding one pixel per tile.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Columns, g.Rows))
	for _, t := range g.tiles {
		img.SetNRGBA(t.X, t.Y, t.Colour.NRGBA())
	}
	return img
}
