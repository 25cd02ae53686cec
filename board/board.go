// Package board owns the dice on a tray and ties layout, rendering and
// interaction together.
//
// The board is driven from one goroutine. Every change to the set of dice
// (add, remove, throw, resize) re-lays the tray; a drag only touches the
// dragged die.
package board

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/event"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/interaction"
	"github.com/lixenwraith/dicetray/placement"
	"github.com/lixenwraith/dicetray/render"
	"github.com/lixenwraith/dicetray/vmath"
)

// Board is a tray of dice
type Board struct {
	settings Settings
	grid     *grid.Grid
	engine   *placement.Engine
	rng      vmath.Rand
	bus      *event.Bus
	logger   *log.Logger

	dice   []*die.Die
	player die.Player
	origin core.Point // Terminal cell of the surface top-left corner

	out     render.Output
	painter *render.Painter
	canvas  *render.Canvas
	frozen  *render.Canvas
	status  string
}

// Option configures a Board
type Option func(*Board)

// WithRand sets the random source for layout and throws
func WithRand(rng vmath.Rand) Option {
	return func(b *Board) { b.rng = rng }
}

// WithBus shares an event bus, a private one is created otherwise
func WithBus(bus *event.Bus) Option {
	return func(b *Board) { b.bus = bus }
}

// WithOutput sets where frames are presented; without it rendering is skipped
func WithOutput(out render.Output) Option {
	return func(b *Board) { b.out = out }
}

// WithLogger sets the diagnostics logger
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithPlayer sets the acting player
func WithPlayer(p die.Player) Option {
	return func(b *Board) { b.player = p }
}

// WithOrigin offsets the surface inside the terminal
func WithOrigin(col, row int) Option {
	return func(b *Board) { b.origin = core.Point{X: col, Y: row} }
}

// New creates an empty board
func New(s Settings, opts ...Option) (*Board, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		settings: s,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.bus == nil {
		b.bus = event.NewBus()
	}
	if b.rng == nil {
		b.rng = vmath.NewTimeSeededRand()
	}
	if b.player.ID == "" {
		color, _ := core.ParseHex(constant.DefaultPlayerColor)
		b.player = die.NewPlayer(constant.DefaultPlayerName, color)
	}

	g, err := grid.New(s.Width, s.Height, s.CellSize)
	if err != nil {
		return nil, err
	}
	b.grid = g

	b.engine, err = placement.NewEngine(g,
		placement.WithRand(b.rng),
		placement.WithDispersion(s.Dispersion),
		placement.WithRotation(s.Rotation),
		placement.WithLogger(b.logger),
	)
	if err != nil {
		return nil, err
	}

	b.painter = render.NewPainter(s.CellSize)
	b.canvas = render.NewCanvas(b.terminalSize())
	return b, nil
}

func (b *Board) Bus() *event.Bus    { return b.bus }
func (b *Board) Grid() *grid.Grid   { return b.grid }
func (b *Board) Player() die.Player { return b.player }
func (b *Board) Dice() []*die.Die   { return b.dice }
func (b *Board) Len() int           { return len(b.dice) }

// SetPlayer changes who holds and releases dice
func (b *Board) SetPlayer(p die.Player) {
	b.player = p
}

// Settings returns the interaction part of the configuration
func (b *Board) Settings() interaction.Settings {
	return interaction.Settings{
		HoldDuration: b.settings.HoldDuration,
		Holdable:     b.settings.Holdable,
		Draggable:    b.settings.Draggable,
	}
}

// Config returns the full configuration
func (b *Board) Config() Settings {
	return b.settings
}

// Tokens returns the dice as interaction tokens, in paint order
func (b *Board) Tokens() []interaction.Token {
	out := make([]interaction.Token, len(b.dice))
	for i, d := range b.dice {
		out[i] = d
	}
	return out
}

// ToSurface maps a terminal cell to surface units
func (b *Board) ToSurface(x, y int) core.Point {
	return core.Point{
		X: (x - b.origin.X) * constant.UnitsPerColumn,
		Y: (y - b.origin.Y) * constant.UnitsPerRow,
	}
}

// Add creates n thrown dice and re-lays the tray
// Fails without adding anything when the grid cannot hold them
func (b *Board) Add(n int) error {
	if n <= 0 {
		return nil
	}
	if len(b.dice)+n > b.grid.Capacity() {
		return &core.ConfigError{
			Field:  "dice",
			Value:  len(b.dice) + n,
			Reason: fmt.Sprintf("exceeds grid capacity of %d", b.grid.Capacity()),
		}
	}
	for i := 0; i < n; i++ {
		d := die.New(b.bus)
		d.Throw(b.rng)
		b.dice = append(b.dice, d)
	}
	return b.Layout()
}

// Adopt appends existing dice without re-laying, for restoring saved trays
func (b *Board) Adopt(dice ...*die.Die) error {
	if len(b.dice)+len(dice) > b.grid.Capacity() {
		return &core.ConfigError{
			Field:  "dice",
			Value:  len(b.dice) + len(dice),
			Reason: fmt.Sprintf("exceeds grid capacity of %d", b.grid.Capacity()),
		}
	}
	b.dice = append(b.dice, dice...)
	return nil
}

// Remove drops up to n of the most recently added unheld dice and re-lays
// Returns how many were removed
func (b *Board) Remove(n int) (int, error) {
	removed := 0
	for i := len(b.dice) - 1; i >= 0 && removed < n; i-- {
		if b.dice[i].IsHeld() {
			continue
		}
		b.dice = append(b.dice[:i], b.dice[i+1:]...)
		removed++
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, b.Layout()
}

// Throw re-throws every unheld die and re-lays the tray
func (b *Board) Throw() error {
	for _, d := range b.dice {
		if !d.IsHeld() {
			d.Throw(b.rng)
		}
	}
	return b.Layout()
}

// Layout re-packs the dice and redraws
func (b *Board) Layout() error {
	tokens := make([]placement.Token, len(b.dice))
	for i, d := range b.dice {
		tokens[i] = d
	}

	result, err := b.engine.Layout(tokens)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	b.bus.Emit(event.Event{
		Type:    event.LaidOut,
		Source:  b,
		Payload: &event.LayoutPayload{Total: len(result), Placed: result.PlacedCount()},
	})
	b.Render()
	return nil
}

// NeedsLayout reports whether any die lacks coordinates
func (b *Board) NeedsLayout() bool {
	for _, d := range b.dice {
		if !d.HasCoordinates() {
			return true
		}
	}
	return false
}

// SetStatus sets the footer line
func (b *Board) SetStatus(s string) {
	b.status = s
}

// SetSize reconfigures the surface
// Dice left outside the new grid lose their coordinates, then the tray is re-laid
func (b *Board) SetSize(width, height int) error {
	if err := b.grid.Configure(width, height, b.settings.CellSize); err != nil {
		return err
	}
	b.settings.Width, b.settings.Height = width, height
	b.canvas.Resize(b.terminalSize())
	b.evictOutside()
	return b.relayoutIfFits()
}

// SetCellSize reconfigures the cell size and re-lays the tray
func (b *Board) SetCellSize(cellSize int) error {
	if err := b.grid.Configure(b.settings.Width, b.settings.Height, cellSize); err != nil {
		return err
	}
	b.settings.CellSize = cellSize
	b.painter.SetCellSize(cellSize)
	for _, d := range b.dice {
		d.ClearCoordinates()
	}
	return b.relayoutIfFits()
}

// SetDispersion validates and applies the dispersion factor
func (b *Board) SetDispersion(d float64) error {
	if err := b.engine.SetDispersion(d); err != nil {
		return err
	}
	b.settings.Dispersion = d
	return nil
}

// SetHoldDuration validates and applies the hold timer length
func (b *Board) SetHoldDuration(d time.Duration) error {
	if err := core.RequirePositive("holdDuration", d); err != nil {
		return err
	}
	b.settings.HoldDuration = d
	return nil
}

// SetRotation toggles random rotation for subsequent layouts
func (b *Board) SetRotation(enabled bool) {
	b.settings.Rotation = enabled
	b.engine.SetRotation(enabled)
}

func (b *Board) SetDraggable(enabled bool) { b.settings.Draggable = enabled }
func (b *Board) SetHoldable(enabled bool)  { b.settings.Holdable = enabled }

// relayoutIfFits re-lays the tray, trimming unplaceable dice when the grid shrank
func (b *Board) relayoutIfFits() error {
	if over := len(b.dice) - b.grid.Capacity(); over > 0 {
		removed := b.removeUnlaid(over)
		b.logger.Printf("board: grid shrank, removed %d dice", removed)
	}
	return b.Layout()
}

func (b *Board) removeUnlaid(n int) int {
	removed := 0
	for i := len(b.dice) - 1; i >= 0 && removed < n; i-- {
		if b.dice[i].HasCoordinates() && b.dice[i].IsHeld() {
			continue
		}
		b.dice = append(b.dice[:i], b.dice[i+1:]...)
		removed++
	}
	// Held dice alone can still exceed a tiny grid
	for len(b.dice) > b.grid.Capacity() {
		b.dice = b.dice[:len(b.dice)-1]
		removed++
	}
	return removed
}

func (b *Board) evictOutside() {
	for _, d := range b.dice {
		if p, ok := d.Coordinates(); ok && !b.grid.Contains(b.grid.CellAt(p)) {
			d.ClearCoordinates()
		}
	}
}

// terminalSize is the surface in terminal cells plus a status line
func (b *Board) terminalSize() (int, int) {
	return b.settings.Width/constant.UnitsPerColumn + b.origin.X,
		b.settings.Height/constant.UnitsPerRow + b.origin.Y + 1
}

var _ interaction.Surface = (*Board)(nil)
