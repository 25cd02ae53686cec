package event

import "github.com/lixenwraith/dicetray/core"

// Event is one notification
type Event struct {
	Type    Type
	Source  any // Emitting die or board
	Payload any
}

// DropPayload describes where a dragged die landed
type DropPayload struct {
	From    core.Point
	To      core.Point
	Snapped bool // False when the die went back to From
}

// LayoutPayload summarizes a layout pass
type LayoutPayload struct {
	Total  int
	Placed int
}
