package placement

import "github.com/lixenwraith/dicetray/core"

// Token is what the layout reads and writes on a die
type Token interface {
	// Coordinates returns the top-left corner in surface units, false if unset
	Coordinates() (core.Point, bool)
	SetCoordinates(p core.Point)
	ClearCoordinates()

	// Rotation is in degrees
	Rotation() int
	SetRotation(deg int)

	IsHeld() bool
}

// IsFixed reports whether layout must leave t where it is
func IsFixed(t Token) bool {
	_, ok := t.Coordinates()
	return ok && t.IsHeld()
}
