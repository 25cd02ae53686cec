package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
)

// Face is what the painter needs to draw a die
type Face struct {
	Pips     int
	Rotation int // Degrees, drawn in quarter turns
	Color    core.RGB
	Held     bool
	Holder   core.RGB // Border color while held
	Dragged  bool
}

// pipLayouts marks the 3x3 pip positions of each face, row-major
var pipLayouts = [constant.MaxPips + 1][9]bool{
	1: {false, false, false, false, true, false, false, false, false},
	2: {true, false, false, false, false, false, false, false, true},
	3: {true, false, false, false, true, false, false, false, true},
	4: {true, false, true, false, false, false, true, false, true},
	5: {true, false, true, false, true, false, true, false, true},
	6: {true, false, true, true, false, true, true, false, true},
}

const pipRune = '●'

// Painter draws dice onto a canvas
type Painter struct {
	cellSize int // Surface units per grid cell
}

// NewPainter creates a painter for dice of cellSize units
func NewPainter(cellSize int) *Painter {
	return &Painter{cellSize: cellSize}
}

func (p *Painter) SetCellSize(cellSize int) {
	p.cellSize = cellSize
}

// BoxSize returns the die box in terminal cells, one cell of margin inside the grid cell
func (p *Painter) BoxSize() (w, h int) {
	cols := p.cellSize / constant.UnitsPerColumn
	rows := p.cellSize / constant.UnitsPerRow
	return max(cols-2, 5), max(rows-1, 3)
}

// ToTerminal maps a surface point to terminal column and row
func ToTerminal(pt core.Point) (col, row int) {
	return pt.X / constant.UnitsPerColumn, pt.Y / constant.UnitsPerRow
}

// Paint draws f with its grid cell's top-left corner at surface point at
func (p *Painter) Paint(c *Canvas, at core.Point, f Face) {
	col, row := ToTerminal(at)
	col++ // margin
	w, h := p.BoxSize()

	face := f.Color
	if f.Held {
		face = face.Scale(constant.HeldDimFactor)
	}
	bg := tcell.NewRGBColor(int32(face.R), int32(face.G), int32(face.B))
	body := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)

	border := body
	if f.Held {
		border = border.Foreground(tcell.NewRGBColor(int32(f.Holder.R), int32(f.Holder.G), int32(f.Holder.B))).Bold(true)
	}
	if f.Dragged {
		border = border.Reverse(true)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Set(col+x, row+y, boxRune(x, y, w, h, f.Held), border)
		}
	}

	iw, ih := w-2, h-2
	layout := rotate(pipLayouts[clampPips(f.Pips)], f.Rotation)
	for k := 0; k < 9; k++ {
		if !layout[k] {
			continue
		}
		px := 1 + (k%3)*(iw-1)/2
		py := 1 + (k/3)*(ih-1)/2
		c.Set(col+px, row+py, pipRune, body)
	}
}

func boxRune(x, y, w, h int, held bool) rune {
	top, bottom, left, right := y == 0, y == h-1, x == 0, x == w-1
	if held {
		switch {
		case top && left:
			return '╔'
		case top && right:
			return '╗'
		case bottom && left:
			return '╚'
		case bottom && right:
			return '╝'
		case top || bottom:
			return '═'
		case left || right:
			return '║'
		}
		return ' '
	}
	switch {
	case top && left:
		return '╭'
	case top && right:
		return '╮'
	case bottom && left:
		return '╰'
	case bottom && right:
		return '╯'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

// rotate turns a 3x3 layout clockwise by the nearest quarter turn
func rotate(layout [9]bool, degrees int) [9]bool {
	turns := ((degrees + 45) / 90) % 4
	for ; turns > 0; turns-- {
		var next [9]bool
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				next[c*3+(2-r)] = layout[r*3+c]
			}
		}
		layout = next
	}
	return layout
}

func clampPips(n int) int {
	return min(max(n, constant.MinPips), constant.MaxPips)
}
