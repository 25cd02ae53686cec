// Package interaction turns raw pointer events into hold toggles and drags.
//
// A press on a die starts disambiguation. The hold timer firing first toggles
// the die's held state; the pointer moving MinDelta or more on either axis
// first cancels the timer and starts a drag. Releasing before either happens
// does nothing. A drag ends by snapping the die to the best covered free cell,
// or by putting it back where it was when no cell qualifies.
package interaction

import (
	"io"
	"log"

	"github.com/lixenwraith/dicetray/clock"
	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/event"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/placement"
	"github.com/lixenwraith/dicetray/snap"
)

// Token is a die as the controller sees it
type Token interface {
	placement.Token
	Toggle(p die.Player) bool
}

// Surface is the board as the controller sees it
type Surface interface {
	Tokens() []Token
	Grid() *grid.Grid
	Settings() Settings

	// ToSurface maps window coordinates to surface units
	ToSurface(x, y int) core.Point

	// Player is who holds and releases dice
	Player() die.Player

	// Freeze captures the surface without the dragged token
	Freeze(dragged Token)

	// PaintDragged draws the dragged token at a free position over the frozen surface
	PaintDragged(dragged Token, at core.Point)

	// Render fully redraws and discards any frozen surface
	Render()
}

// Controller is the gesture state machine of one board
type Controller struct {
	surface  Surface
	sched    clock.Scheduler
	bus      *event.Bus
	logger   *log.Logger
	minDelta int

	state   State
	origin  core.Point // Press position, surface units
	grab    core.Point // Press position relative to the token corner
	token   Token
	preDrag core.Point
	touch   TouchNormalizer

	hold    clock.Timer
	holdGen uint64 // Invalidates hold callbacks already posted when the timer was stopped
}

// Option configures a Controller
type Option func(*Controller)

// WithBus emits Dropped events
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger traces state transitions
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMinDelta overrides the drag threshold
func WithMinDelta(d int) Option {
	return func(c *Controller) {
		if d > 0 {
			c.minDelta = d
		}
	}
}

// NewController creates a controller driving surface, with hold timers on sched
func NewController(surface Surface, sched clock.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		surface:  surface,
		sched:    sched,
		logger:   log.New(io.Discard, "", 0),
		minDelta: constant.MinDelta,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Active returns the token of the current gesture, nil when idle
func (c *Controller) Active() Token { return c.token }

// Handle feeds one pointer event through the state machine
// Events the current state does not expect are ignored
func (c *Controller) Handle(ev Event) {
	p := c.surface.ToSurface(ev.X, ev.Y)

	switch ev.Type {
	case PointerDown:
		c.press(p)
	case PointerMove:
		c.move(p)
	case PointerUp:
		c.release(p)
	case PointerLeave:
		c.leave()
	}
}

// HandleTouch normalizes a touch event and feeds it through Handle
func (c *Controller) HandleTouch(ev TouchEvent) {
	if pev, ok := c.touch.Normalize(ev); ok {
		c.Handle(pev)
	}
}

// Close cancels a pending hold and abandons the gesture
// A token mid-drag goes back to where it was
func (c *Controller) Close() {
	if c.state == StateDragging {
		c.token.SetCoordinates(c.preDrag)
	}
	c.reset()
}

func (c *Controller) press(p core.Point) {
	if c.state != StateIdle {
		return
	}

	settings := c.surface.Settings()
	if !settings.Holdable && !settings.Draggable {
		return
	}

	t := c.tokenAt(p)
	if t == nil {
		return
	}
	corner, _ := t.Coordinates()

	c.state = StateAwaitingDisambiguation
	c.token = t
	c.origin = p
	c.grab = p.Sub(corner)
	c.preDrag = corner

	if settings.Holdable {
		c.startHold(settings)
	}
	c.logger.Printf("interaction: press at %v, awaiting", p)
}

func (c *Controller) move(p core.Point) {
	switch c.state {
	case StateAwaitingDisambiguation:
		if !c.surface.Settings().Draggable || !c.beyondThreshold(p) {
			return
		}
		c.cancelHold()
		c.state = StateDragging
		c.surface.Freeze(c.token)
		c.surface.PaintDragged(c.token, p.Sub(c.grab))
		c.logger.Printf("interaction: drag started at %v", p)

	case StateDragging:
		c.surface.PaintDragged(c.token, p.Sub(c.grab))
	}
}

func (c *Controller) release(p core.Point) {
	switch c.state {
	case StateAwaitingDisambiguation:
		c.reset()

	case StateDragging:
		c.drop(p.Sub(c.grab))
		c.reset()
		c.surface.Render()
	}
}

func (c *Controller) leave() {
	switch c.state {
	case StateAwaitingDisambiguation:
		c.reset()

	case StateDragging:
		c.token.SetCoordinates(c.preDrag)
		c.emitDrop(c.preDrag, false)
		c.reset()
		c.surface.Render()
	}
}

func (c *Controller) drop(at core.Point) {
	g := c.surface.Grid()
	tokens := c.surface.Tokens()
	others := make([]placement.Token, len(tokens))
	for i, t := range tokens {
		others[i] = t
	}

	target, ok := snap.NewResolver(g).SnapTo(at, c.token, snap.NewOccupancy(g, others))
	if !ok {
		target = c.preDrag
	}
	c.token.SetCoordinates(target)
	c.emitDrop(target, ok)
	c.logger.Printf("interaction: dropped at %v -> %v (snapped=%v)", at, target, ok)
}

func (c *Controller) emitDrop(to core.Point, snapped bool) {
	if c.bus == nil {
		return
	}
	c.bus.Emit(event.Event{
		Type:    event.Dropped,
		Source:  c.token,
		Payload: &event.DropPayload{From: c.preDrag, To: to, Snapped: snapped},
	})
}

func (c *Controller) startHold(settings Settings) {
	c.cancelHold()
	gen := c.holdGen
	c.hold = c.sched.AfterFunc(settings.HoldDuration, func() {
		c.holdFired(gen)
	})
}

func (c *Controller) cancelHold() {
	if c.hold != nil {
		c.hold.Stop()
		c.hold = nil
	}
	c.holdGen++
}

func (c *Controller) holdFired(gen uint64) {
	if gen != c.holdGen || c.state != StateAwaitingDisambiguation {
		return
	}
	c.hold = nil
	c.state = StateHolding

	changed := c.token.Toggle(c.surface.Player())
	c.logger.Printf("interaction: hold toggled (changed=%v, held=%v)", changed, c.token.IsHeld())

	c.reset()
	c.surface.Render()
}

func (c *Controller) reset() {
	c.cancelHold()
	c.state = StateIdle
	c.token = nil
}

func (c *Controller) beyondThreshold(p core.Point) bool {
	d := p.Sub(c.origin)
	return abs(d.X) >= c.minDelta || abs(d.Y) >= c.minDelta
}

// tokenAt returns the topmost token in the cell under p
func (c *Controller) tokenAt(p core.Point) Token {
	if p.X < 0 || p.Y < 0 {
		return nil
	}
	g := c.surface.Grid()
	cell := g.CellAt(p)
	if !g.Contains(cell) {
		return nil
	}

	tokens := c.surface.Tokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		if pos, ok := tokens[i].Coordinates(); ok && g.CellAt(pos) == cell {
			return tokens[i]
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
