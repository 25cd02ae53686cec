// Package render paints the tray onto a terminal through tcell.
//
// Dice are drawn into a Canvas, an off-screen cell buffer, and the finished
// canvas is presented in one pass. A cloned Canvas serves as the frozen
// background while a die is being dragged.
package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal character
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Canvas is an off-screen grid of cells in terminal coordinates
type Canvas struct {
	width  int
	height int
	cells  []Cell // index = y*width + x
}

// NewCanvas creates a canvas filled with blanks
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Resize discards content and reallocates when the size changes
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.width && height == c.height && c.cells != nil {
		return
	}
	c.width = width
	c.height = height
	c.cells = make([]Cell, width*height)
	c.Clear(tcell.StyleDefault)
}

// Clear fills every cell with a blank in style
func (c *Canvas) Clear(style tcell.Style) {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Style: style}
	}
}

// Set writes a cell, false if (x, y) is off the canvas
func (c *Canvas) Set(x, y int, r rune, style tcell.Style) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Style: style}
	return true
}

// Get reads a cell, false if (x, y) is off the canvas
func (c *Canvas) Get(x, y int) (Cell, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// Clone returns an independent copy
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{width: c.width, height: c.height, cells: make([]Cell, len(c.cells))}
	copy(out.cells, c.cells)
	return out
}

// CopyFrom overwrites c with src, resizing if needed
func (c *Canvas) CopyFrom(src *Canvas) {
	if c.width != src.width || c.height != src.height {
		c.width = src.width
		c.height = src.height
		c.cells = make([]Cell, len(src.cells))
	}
	copy(c.cells, src.cells)
}

// Dim sets the dim attribute on every cell
func (c *Canvas) Dim() {
	for i := range c.cells {
		c.cells[i].Style = c.cells[i].Style.Dim(true)
	}
}

// Text writes s left to right from (x, y), clipped at the edge
func (c *Canvas) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if !c.Set(x, y, r, style) && x >= c.width {
			return
		}
		x++
	}
}
