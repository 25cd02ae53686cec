// Package die implements the tokens placed on the tray.
package die

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/event"
	"github.com/lixenwraith/dicetray/vmath"
)

// Die is a six-sided token
// Fields are owned by the UI goroutine
type Die struct {
	id       string
	pips     int
	color    core.RGB
	coords   core.Point
	placed   bool
	rotation int
	holder   *Player
	bus      *event.Bus
}

// Option configures a Die
type Option func(*Die)

// WithColor sets the face color
func WithColor(c core.RGB) Option {
	return func(d *Die) { d.color = c }
}

// WithPips sets the initial face, values outside 1..6 are ignored
func WithPips(n int) Option {
	return func(d *Die) {
		if n >= constant.MinPips && n <= constant.MaxPips {
			d.pips = n
		}
	}
}

// WithID restores a persisted identity
func WithID(id string) Option {
	return func(d *Die) {
		if id != "" {
			d.id = id
		}
	}
}

// WithHolder restores a persisted hold without emitting Held
func WithHolder(p Player) Option {
	return func(d *Die) {
		holder := p
		d.holder = &holder
	}
}

// New creates an unplaced die showing one pip
// bus may be nil, in which case no notifications are emitted
func New(bus *event.Bus, opts ...Option) *Die {
	d := &Die{
		id:    uuid.NewString(),
		pips:  constant.MinPips,
		color: core.RGBWhite,
		bus:   bus,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Die) ID() string      { return d.id }
func (d *Die) Pips() int       { return d.pips }
func (d *Die) Color() core.RGB { return d.color }

func (d *Die) Coordinates() (core.Point, bool) {
	return d.coords, d.placed
}

func (d *Die) SetCoordinates(p core.Point) {
	d.coords = p
	d.placed = true
}

func (d *Die) ClearCoordinates() {
	d.coords = core.Point{}
	d.placed = false
}

func (d *Die) HasCoordinates() bool { return d.placed }

func (d *Die) Rotation() int { return d.rotation }

func (d *Die) SetRotation(deg int) {
	d.rotation = ((deg % constant.FullTurn) + constant.FullTurn) % constant.FullTurn
}

func (d *Die) IsHeld() bool { return d.holder != nil }

// HeldBy returns the holder, false if nobody holds the die
func (d *Die) HeldBy() (Player, bool) {
	if d.holder == nil {
		return Player{}, false
	}
	return *d.holder, true
}

// Throw randomizes the pips
func (d *Die) Throw(rng vmath.Rand) {
	d.pips = constant.MinPips + rng.Intn(constant.MaxPips-constant.MinPips+1)
	d.emit(event.Thrown, nil)
}

// Hold claims the die for p, replacing any previous holder
func (d *Die) Hold(p Player) {
	holder := p
	d.holder = &holder
	d.emit(event.Held, p)
}

// Release lets go of the die if p is the holder
func (d *Die) Release(p Player) bool {
	if d.holder == nil || !d.holder.Equal(p) {
		return false
	}
	d.holder = nil
	d.emit(event.Released, p)
	return true
}

// Toggle releases the die if held, otherwise holds it for p
// Reports whether the held state changed
func (d *Die) Toggle(p Player) bool {
	if d.IsHeld() {
		return d.Release(p)
	}
	d.Hold(p)
	return true
}

func (d *Die) emit(t event.Type, payload any) {
	if d.bus == nil {
		return
	}
	d.bus.Emit(event.Event{Type: t, Source: d, Payload: payload})
}
