package constant

// Terminal mapping
const (
	// UnitsPerColumn and UnitsPerRow convert terminal cells to surface units
	// Rows count double since a character cell is about twice as tall as wide
	UnitsPerColumn = 1
	UnitsPerRow    = 2
)

// EventBufferSize is the capacity of the tcell event channel
const EventBufferSize = 100

// HeldDimFactor darkens the face of a held die
const HeldDimFactor = 0.6
