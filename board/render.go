package board

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/interaction"
	"github.com/lixenwraith/dicetray/render"
)

var (
	trayStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 60, 30))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Render redraws the whole tray and drops any frozen background
func (b *Board) Render() {
	b.frozen = nil
	b.paintTray(b.canvas, nil)
	b.present(b.canvas)
}

// Freeze captures the tray without the dragged die
// Drag frames are composed over this capture until the next Render
func (b *Board) Freeze(dragged interaction.Token) {
	frozen := render.NewCanvas(b.canvas.Width(), b.canvas.Height())
	b.paintTray(frozen, dragged)
	frozen.Dim()
	b.frozen = frozen
}

// PaintDragged draws the dragged die at a free surface position over the frozen tray
func (b *Board) PaintDragged(dragged interaction.Token, at core.Point) {
	if b.frozen == nil {
		b.Freeze(dragged)
	}
	b.canvas.CopyFrom(b.frozen)

	if d, ok := dragged.(*die.Die); ok {
		face := b.face(d)
		face.Dragged = true
		b.painter.Paint(b.canvas, b.onTerminal(at), face)
	}
	b.present(b.canvas)
}

// Canvas exposes the last composed frame
func (b *Board) Canvas() *render.Canvas {
	return b.canvas
}

func (b *Board) paintTray(c *render.Canvas, skip interaction.Token) {
	c.Clear(tcell.StyleDefault)

	cols := b.grid.Cols() * b.grid.CellSize() / constant.UnitsPerColumn
	rows := b.grid.Rows() * b.grid.CellSize() / constant.UnitsPerRow
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c.Set(b.origin.X+x, b.origin.Y+y, ' ', trayStyle)
		}
	}

	for _, d := range b.dice {
		if skip != nil && interaction.Token(d) == skip {
			continue
		}
		if p, ok := d.Coordinates(); ok {
			b.painter.Paint(c, b.onTerminal(p), b.face(d))
		}
	}

	c.Text(b.origin.X, b.origin.Y+rows, b.statusLine(), statusStyle)
}

func (b *Board) face(d *die.Die) render.Face {
	f := render.Face{
		Pips:     d.Pips(),
		Rotation: d.Rotation(),
		Color:    d.Color(),
	}
	if holder, ok := d.HeldBy(); ok {
		f.Held = true
		f.Holder = holder.Color
	}
	return f
}

// onTerminal shifts a surface point by the terminal origin, in surface units
func (b *Board) onTerminal(p core.Point) core.Point {
	return core.Point{
		X: p.X + b.origin.X*constant.UnitsPerColumn,
		Y: p.Y + b.origin.Y*constant.UnitsPerRow,
	}
}

func (b *Board) statusLine() string {
	if b.status != "" {
		return b.status
	}
	held, total := 0, 0
	for _, d := range b.dice {
		if d.IsHeld() {
			held++
		}
		total += d.Pips()
	}
	return fmt.Sprintf(" dice %d  held %d  total %d  [t]hrow [+/-] dice [r]otate [q]uit", len(b.dice), held, total)
}

func (b *Board) present(c *render.Canvas) {
	if b.out != nil {
		b.out.Present(c)
	}
}
