package placement

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/grid"
	"github.com/lixenwraith/dicetray/vmath"
)

type testToken struct {
	pos      core.Point
	hasPos   bool
	rotation int
	held     bool
}

func (t *testToken) Coordinates() (core.Point, bool) { return t.pos, t.hasPos }
func (t *testToken) SetCoordinates(p core.Point)     { t.pos, t.hasPos = p, true }
func (t *testToken) ClearCoordinates()               { t.pos, t.hasPos = core.Point{}, false }
func (t *testToken) Rotation() int                   { return t.rotation }
func (t *testToken) SetRotation(deg int)             { t.rotation = deg }
func (t *testToken) IsHeld() bool                    { return t.held }

func newTokens(n int) []Token {
	tokens := make([]Token, n)
	for i := range tokens {
		tokens[i] = &testToken{}
	}
	return tokens
}

func mustGrid(t *testing.T, width, height, cellSize int) *grid.Grid {
	g, err := grid.New(width, height, cellSize)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func mustEngine(t *testing.T, g *grid.Grid, opts ...Option) *Engine {
	e, err := NewEngine(g, opts...)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestLayoutCapacity(t *testing.T) {
	Convey("Given a 5x5 grid", t, func() {
		g := mustGrid(t, 500, 500, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(1)))

		Convey("When laying out any count up to capacity", func() {
			for n := 0; n <= g.Capacity(); n++ {
				result, err := e.Layout(newTokens(n))
				So(err, ShouldBeNil)
				So(result, ShouldHaveLength, n)
			}
		})

		Convey("When laying out an empty list", func() {
			result, err := e.Layout(nil)
			So(err, ShouldBeNil)
			So(result, ShouldNotBeNil)
			So(result, ShouldHaveLength, 0)
		})

		Convey("When laying out more tokens than cells", func() {
			tokens := newTokens(g.Capacity() + 1)
			result, err := e.Layout(tokens)

			So(result, ShouldBeNil)
			So(errors.Is(err, core.ErrConfiguration), ShouldBeTrue)

			Convey("No token is touched", func() {
				for _, tok := range tokens {
					_, ok := tok.Coordinates()
					So(ok, ShouldBeFalse)
				}
			})
		})
	})
}

func TestLayoutInvariants(t *testing.T) {
	Convey("Given a 6x4 grid with held and unheld tokens", t, func() {
		g := mustGrid(t, 600, 400, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(99)), WithRotation(true))

		held := &testToken{pos: core.Point{X: 200, Y: 100}, hasPos: true, rotation: 45, held: true}
		tokens := append([]Token{held}, newTokens(15)...)

		Convey("Repeated layouts never move the held token", func() {
			for i := 0; i < 25; i++ {
				_, err := e.Layout(tokens)
				So(err, ShouldBeNil)
				So(held.pos, ShouldResemble, core.Point{X: 200, Y: 100})
				So(held.rotation, ShouldEqual, 45)
			}
		})

		Convey("No two tokens share a cell and all stay in bounds", func() {
			for i := 0; i < 25; i++ {
				result, err := e.Layout(tokens)
				So(err, ShouldBeNil)

				seen := make(map[grid.Cell]bool)
				for _, p := range result {
					if !p.Placed {
						continue
					}
					So(seen[p.Cell], ShouldBeFalse)
					seen[p.Cell] = true

					pos, ok := p.Token.Coordinates()
					So(ok, ShouldBeTrue)
					So(pos.X, ShouldBeGreaterThanOrEqualTo, 0)
					So(pos.X, ShouldBeLessThan, g.Width())
					So(pos.Y, ShouldBeGreaterThanOrEqualTo, 0)
					So(pos.Y, ShouldBeLessThan, g.Height())
					So(g.CellAt(pos), ShouldResemble, p.Cell)
				}
			}
		})

		Convey("Fixed tokens come first in the result", func() {
			result, err := e.Layout(tokens)
			So(err, ShouldBeNil)
			So(result[0].Token == Token(held), ShouldBeTrue)
		})

		Convey("Rotations fall in [0, 360)", func() {
			result, err := e.Layout(tokens)
			So(err, ShouldBeNil)
			for _, p := range result[1:] {
				So(p.Token.Rotation(), ShouldBeGreaterThanOrEqualTo, 0)
				So(p.Token.Rotation(), ShouldBeLessThan, 360)
			}
		})
	})

	Convey("A held token without coordinates is laid out like any other", t, func() {
		g := mustGrid(t, 300, 300, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(5)))

		tok := &testToken{held: true}
		result, err := e.Layout([]Token{tok})

		So(err, ShouldBeNil)
		So(result[0].Placed, ShouldBeTrue)
		So(tok.hasPos, ShouldBeTrue)
	})

	Convey("Rotation disabled assigns no rotation", t, func() {
		g := mustGrid(t, 300, 300, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(5)))

		tok := &testToken{rotation: 90}
		_, err := e.Layout([]Token{tok})

		So(err, ShouldBeNil)
		So(tok.rotation, ShouldEqual, 0)
	})
}

func TestLayoutRandomness(t *testing.T) {
	Convey("Given two engines seeded alike", t, func() {
		g := mustGrid(t, 800, 600, 100)
		a := mustEngine(t, g, WithRand(vmath.NewFastRand(2024)), WithRotation(true))
		b := mustEngine(t, g, WithRand(vmath.NewFastRand(2024)), WithRotation(true))

		Convey("Layouts are identical", func() {
			ta, tb := newTokens(10), newTokens(10)
			_, errA := a.Layout(ta)
			_, errB := b.Layout(tb)
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)

			for i := range ta {
				pa, _ := ta[i].Coordinates()
				pb, _ := tb[i].Coordinates()
				So(pa, ShouldResemble, pb)
				So(ta[i].Rotation(), ShouldEqual, tb[i].Rotation())
			}
		})
	})

	Convey("Given an unseeded engine", t, func() {
		g := mustGrid(t, 500, 500, 100)
		e := mustEngine(t, g, WithDispersion(9))

		Convey("The same token lands on more than one cell across trials", func() {
			tok := &testToken{}
			seen := make(map[core.Point]bool)
			for i := 0; i < 20; i++ {
				_, err := e.Layout([]Token{tok})
				So(err, ShouldBeNil)
				seen[tok.pos] = true
			}
			So(len(seen), ShouldBeGreaterThan, 1)
		})
	})
}

func TestLayoutPartialPlacement(t *testing.T) {
	Convey("Given a dispersion too small to seat every token", t, func() {
		g := mustGrid(t, 500, 500, 100)
		// ceil(4 * 0.1) = 1 cell, satisfied by the center ring alone
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(3)), WithDispersion(0.1))

		tokens := newTokens(4)
		for _, tok := range tokens {
			tok.SetCoordinates(core.Point{X: 400, Y: 400})
		}

		result, err := e.Layout(tokens)

		Convey("Layout succeeds and seats what it can", func() {
			So(err, ShouldBeNil)
			So(result, ShouldHaveLength, 4)
			So(result.PlacedCount(), ShouldEqual, 1)
		})

		Convey("Unseated tokens lose their coordinates", func() {
			for _, p := range result {
				_, ok := p.Token.Coordinates()
				So(ok, ShouldEqual, p.Placed)
			}
		})
	})
}

func TestLayoutSpreadsAroundCenter(t *testing.T) {
	Convey("Given one token on a 6x6 grid with dispersion 2", t, func() {
		g := mustGrid(t, 600, 600, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(17)), WithDispersion(2))
		tokens := newTokens(1)

		// Even dimensions fix the center at (2, 2); two cells are wanted so ring 1 is searched
		seen := make(map[grid.Cell]int)
		for i := 0; i < 2000; i++ {
			result, err := e.Layout(tokens)
			So(err, ShouldBeNil)
			seen[result[0].Cell]++
		}

		Convey("Every cell of the center and ring 1 is eventually chosen", func() {
			So(seen, ShouldHaveLength, 9)
			for _, c := range g.Ring(grid.Cell{Row: 2, Col: 2}, 1) {
				So(seen[c], ShouldBeGreaterThan, 0)
			}
			So(seen[grid.Cell{Row: 2, Col: 2}], ShouldBeGreaterThan, 0)
		})
	})
}

func TestLayoutThinGrid(t *testing.T) {
	Convey("Given a single-row grid ten cells wide", t, func() {
		g := mustGrid(t, 1000, 100, 100)
		e := mustEngine(t, g, WithRand(vmath.NewFastRand(5)))

		result, err := e.Layout(newTokens(5))

		Convey("The ring search stops at level one and seats three tokens", func() {
			So(err, ShouldBeNil)
			So(result.PlacedCount(), ShouldEqual, 3)
			for _, p := range result {
				if p.Placed {
					So(p.Cell.Row, ShouldEqual, 0)
					So(p.Cell.Col, ShouldBeBetweenOrEqual, 3, 5)
				}
			}
		})
	})
}

func TestDispersionValidation(t *testing.T) {
	Convey("Non-positive dispersion is rejected", t, func() {
		g := mustGrid(t, 500, 500, 100)

		_, err := NewEngine(g, WithDispersion(0))
		So(errors.Is(err, core.ErrConfiguration), ShouldBeTrue)

		e := mustEngine(t, g)
		So(errors.Is(e.SetDispersion(-1), core.ErrConfiguration), ShouldBeTrue)
		So(e.Dispersion(), ShouldEqual, 2.0)
	})
}
