// Package placement lays tokens out on a grid without collisions.
//
// Held tokens keep their cell. Every other token is seated on a random free
// cell drawn from rings expanding around the grid center, with the number of
// candidate cells bounded by the dispersion factor.
package placement

import (
	"io"
	"log"
	"math"
	"strconv"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/vmath"
)

// Placement pairs a token with its cell
// Placed is false for a token the search could not seat
type Placement struct {
	Token  Token
	Cell   grid.Cell
	Placed bool
}

// Result holds one entry per laid out token, fixed tokens first
type Result []Placement

// Engine lays out tokens on a grid
type Engine struct {
	grid       *grid.Grid
	rng        vmath.Rand
	dispersion float64
	rotate     bool
	logger     *log.Logger
}

// Option configures an Engine
type Option func(*Engine) error

// WithRand sets the random source, seed it for reproducible layouts
func WithRand(rng vmath.Rand) Option {
	return func(e *Engine) error {
		e.rng = rng
		return nil
	}
}

// WithDispersion sets the candidate cell multiplier
func WithDispersion(d float64) Option {
	return func(e *Engine) error {
		return e.SetDispersion(d)
	}
}

// WithRotation enables random rotation of placed tokens
func WithRotation(enabled bool) Option {
	return func(e *Engine) error {
		e.rotate = enabled
		return nil
	}
}

// WithLogger routes partial placement warnings
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// NewEngine creates an engine bound to g
func NewEngine(g *grid.Grid, opts ...Option) (*Engine, error) {
	e := &Engine{
		grid:       g,
		dispersion: constant.DefaultDispersion,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.rng == nil {
		e.rng = vmath.NewTimeSeededRand()
	}
	return e, nil
}

// SetDispersion rejects non-positive values
func (e *Engine) SetDispersion(d float64) error {
	if err := core.RequirePositive("dispersion", d); err != nil {
		return err
	}
	e.dispersion = d
	return nil
}

func (e *Engine) Dispersion() float64 { return e.dispersion }

// SetRotation toggles random rotation for subsequent layouts
func (e *Engine) SetRotation(enabled bool) { e.rotate = enabled }

func (e *Engine) Rotation() bool { return e.rotate }

// Layout assigns cells to every token that is not held in place
// More tokens than cells is a configuration error and nothing is touched
// Running out of candidate cells is not: the remaining tokens lose their
// coordinates and are reported with Placed false
func (e *Engine) Layout(tokens []Token) (Result, error) {
	capacity := e.grid.Capacity()
	if len(tokens) > capacity {
		return nil, &core.ConfigError{
			Field:  "tokens",
			Value:  len(tokens),
			Reason: "exceeds grid capacity of " + strconv.Itoa(capacity),
		}
	}
	if len(tokens) == 0 {
		return Result{}, nil
	}

	fixed, toPlace := partition(tokens)

	result := make(Result, 0, len(tokens))
	occupied := make(map[grid.Cell]bool, len(fixed))
	for _, t := range fixed {
		p, _ := t.Coordinates()
		c := e.grid.CellAt(p)
		occupied[c] = true
		result = append(result, Placement{Token: t, Cell: c, Placed: true})
	}

	available := e.candidates(len(tokens), occupied)

	for _, t := range toPlace {
		if len(available) == 0 {
			t.ClearCoordinates()
			result = append(result, Placement{Token: t, Cell: grid.Cell{Row: grid.NoIndex, Col: grid.NoIndex}})
			continue
		}

		i := e.rng.Intn(len(available))
		c := available[i]
		available[i] = available[len(available)-1]
		available = available[:len(available)-1]

		t.SetCoordinates(e.grid.Coordinates(c))
		t.SetRotation(e.rotation())
		result = append(result, Placement{Token: t, Cell: c, Placed: true})
	}

	if unplaced := len(tokens) - result.PlacedCount(); unplaced > 0 {
		e.logger.Printf("placement: %d of %d tokens left unplaced (dispersion %.2f, %dx%d grid)",
			unplaced, len(tokens), e.dispersion, e.grid.Rows(), e.grid.Cols())
	}

	return result, nil
}

// candidates collects free cells ring by ring around the center until at
// least maxCells are found or the search bound is reached
func (e *Engine) candidates(tokenCount int, occupied map[grid.Cell]bool) []grid.Cell {
	capacity := e.grid.Capacity()
	maxCells := min(int(math.Ceil(float64(tokenCount)*e.dispersion)), capacity)
	maxLevel := min(e.grid.Rows(), e.grid.Cols())

	center := e.grid.Center(e.rng)
	cells := make([]grid.Cell, 0, maxCells)

	// Whole rings only, so the pick in Layout stays uniform around the center
	e.grid.EachRing(center, maxLevel, func(_ int, ring []grid.Cell) bool {
		if len(cells) >= maxCells {
			return false
		}
		for _, c := range ring {
			if !occupied[c] {
				cells = append(cells, c)
			}
		}
		return true
	})
	return cells
}

func (e *Engine) rotation() int {
	if !e.rotate {
		return constant.NoRotation
	}
	return e.rng.Intn(constant.FullTurn)
}

func partition(tokens []Token) (fixed, toPlace []Token) {
	for _, t := range tokens {
		if IsFixed(t) {
			fixed = append(fixed, t)
		} else {
			toPlace = append(toPlace, t)
		}
	}
	return fixed, toPlace
}

// PlacedCount returns the number of seated tokens
func (r Result) PlacedCount() int {
	n := 0
	for _, p := range r {
		if p.Placed {
			n++
		}
	}
	return n
}
