package constant

import "time"

// Tray defaults
const (
	// DefaultCellSize is the side of one grid cell in surface units
	DefaultCellSize = 12

	// DefaultDispersion multiplies die count to bound the ring search
	DefaultDispersion = 2.0

	// DefaultDiceCount is the number of dice on a fresh tray
	DefaultDiceCount = 5

	// DefaultPlayerName and DefaultPlayerColor identify the local player
	DefaultPlayerName  = "player"
	DefaultPlayerColor = "#e0a030"
)

// Die faces
const (
	MinPips = 1
	MaxPips = 6
)

// Rotation
const (
	// FullTurn is the exclusive upper bound of a random rotation in degrees
	FullTurn = 360

	// NoRotation is assigned when rotation is disabled
	NoRotation = 0
)

// Interaction
const (
	// MinDelta is the per-axis movement in surface units that turns a press into a drag
	MinDelta = 2

	// DefaultHoldDuration is how long a stationary press takes to toggle hold
	DefaultHoldDuration = 500 * time.Millisecond
)
