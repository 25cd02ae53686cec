// Package snap finds the grid cell a dropped token should land on.
package snap

import (
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/placement"
	"github.com/lixenwraith/dicetray/vmath"
)

// Occupancy indexes tokens by the cell their coordinates fall in
type Occupancy map[grid.Cell][]placement.Token

// NewOccupancy builds the index from tokens that have coordinates
func NewOccupancy(g *grid.Grid, tokens []placement.Token) Occupancy {
	occ := make(Occupancy, len(tokens))
	for _, t := range tokens {
		if p, ok := t.Coordinates(); ok {
			c := g.CellAt(p)
			occ[c] = append(occ[c], t)
		}
	}
	return occ
}

// FreeFor reports whether c is empty or holds only self
func (o Occupancy) FreeFor(c grid.Cell, self placement.Token) bool {
	for _, t := range o[c] {
		if t != self {
			return false
		}
	}
	return true
}

// Resolver snaps drop points onto grid cells
type Resolver struct {
	grid *grid.Grid
}

// NewResolver creates a resolver snapping onto the cells of g
func NewResolver(g *grid.Grid) *Resolver {
	return &Resolver{grid: g}
}

// SnapTo returns the coordinates of the cell best covered by a token whose
// top-left corner is at drop
// Candidates are the cell under drop and its right, lower and diagonal
// neighbours, in that order; cells out of bounds or held by another token are
// skipped, and the first of equally covered cells wins
// Returns false when no candidate survives; the caller keeps the old position
func (r *Resolver) SnapTo(drop core.Point, dragged placement.Token, occupied Occupancy) (core.Point, bool) {
	size := r.grid.CellSize()
	corner := grid.Cell{
		Row: vmath.FloorDiv(drop.Y, size),
		Col: vmath.FloorDiv(drop.X, size),
	}
	candidates := [4]grid.Cell{
		corner,
		{Row: corner.Row, Col: corner.Col + 1},
		{Row: corner.Row + 1, Col: corner.Col},
		{Row: corner.Row + 1, Col: corner.Col + 1},
	}

	footprint := core.Square(drop, size)
	best := -1
	var winner grid.Cell

	for _, c := range candidates {
		if !r.grid.Contains(c) || !occupied.FreeFor(c, dragged) {
			continue
		}
		coverage := vmath.Overlap(footprint, r.grid.Bounds(c))
		if coverage > best {
			best = coverage
			winner = c
		}
	}

	if best < 0 {
		return core.Point{}, false
	}
	return r.grid.Coordinates(winner), true
}
