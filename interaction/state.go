package interaction

import "time"

// State is the gesture state of one board
type State uint8

const (
	StateIdle                   State = iota // No gesture, or a press missed every token
	StateAwaitingDisambiguation              // Pressed a token, neither hold timer nor drag threshold reached
	StateHolding                             // Hold timer fired, toggling; returns to Idle at once
	StateDragging                            // Token follows the pointer over a frozen background
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingDisambiguation:
		return "AwaitingDisambiguation"
	case StateHolding:
		return "Holding"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// Settings is the part of the board configuration the controller reads
// Read at every press so changes apply to the next gesture
type Settings struct {
	HoldDuration time.Duration
	Holdable     bool
	Draggable    bool
}
