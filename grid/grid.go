// Package grid maps a rectangular surface onto square cells.
//
// A Grid converts between three address spaces:
//   - Cell: {Row, Col}
//   - Index: row*cols + col
//   - Coordinates: the top-left corner of a cell in surface units
//
// Conversions are total only inside the grid. Out-of-bounds cells report
// NoIndex instead of clamping.
package grid

import (
	"math"

	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/vmath"
)

// NoIndex is returned for cells outside the grid
const NoIndex = -1

// Cell addresses one grid square
type Cell struct {
	Row, Col int
}

// Grid is the cell geometry of a surface
type Grid struct {
	width    int
	height   int
	cellSize int
	rows     int
	cols     int
}

// New creates a grid, rejecting non-positive dimensions
func New(width, height, cellSize int) (*Grid, error) {
	g := &Grid{}
	if err := g.Configure(width, height, cellSize); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure replaces the surface and cell size and recomputes rows/cols
// On error the previous configuration is kept
// Tokens already placed are not revalidated
func (g *Grid) Configure(width, height, cellSize int) error {
	if err := core.RequirePositive("width", width); err != nil {
		return err
	}
	if err := core.RequirePositive("height", height); err != nil {
		return err
	}
	if err := core.RequirePositive("cellSize", cellSize); err != nil {
		return err
	}

	g.width = width
	g.height = height
	g.cellSize = cellSize
	g.cols = width / cellSize
	g.rows = height / cellSize
	return nil
}

// Width returns the surface width in units
func (g *Grid) Width() int { return g.width }

// Height returns the surface height in units
func (g *Grid) Height() int { return g.height }

// CellSize returns the side of one cell in units
func (g *Grid) CellSize() int { return g.cellSize }

// Rows returns the number of whole cell rows that fit the height
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of whole cell columns that fit the width
func (g *Grid) Cols() int { return g.cols }

// Capacity is the number of cells
func (g *Grid) Capacity() int {
	return g.rows * g.cols
}

// Contains reports whether c lies inside the grid
func (g *Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// IndexOf returns the linear index of c, NoIndex and false if out of bounds
func (g *Grid) IndexOf(c Cell) (int, bool) {
	if !g.Contains(c) {
		return NoIndex, false
	}
	return c.Row*g.cols + c.Col, true
}

// CellOf returns the cell at a linear index
func (g *Grid) CellOf(index int) Cell {
	if g.cols == 0 {
		return Cell{Row: NoIndex, Col: NoIndex}
	}
	return Cell{Row: index / g.cols, Col: index % g.cols}
}

// Coordinates returns the top-left corner of c
func (g *Grid) Coordinates(c Cell) core.Point {
	return core.Point{X: c.Col * g.cellSize, Y: c.Row * g.cellSize}
}

// CellAt returns the cell containing p using truncating division
func (g *Grid) CellAt(p core.Point) Cell {
	return Cell{Row: p.Y / g.cellSize, Col: p.X / g.cellSize}
}

// Bounds returns the footprint of c
func (g *Grid) Bounds(c Cell) core.Area {
	return core.Square(g.Coordinates(c), g.cellSize)
}

// Center picks the layout center
// An exact half rounds up or down at random so the center does not always
// sit on the same side of an odd dimension; the result is clamped into the grid
func (g *Grid) Center(rng vmath.Rand) Cell {
	return Cell{
		Row: clamp(roundHalfRandom(float64(g.rows)/2, rng)-1, g.rows),
		Col: clamp(roundHalfRandom(float64(g.cols)/2, rng)-1, g.cols),
	}
}

func roundHalfRandom(v float64, rng vmath.Rand) int {
	f := math.Floor(v)
	if v-f == 0.5 {
		return int(f) + rng.Intn(2)
	}
	return int(math.Round(v))
}

func clamp(v, n int) int {
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
