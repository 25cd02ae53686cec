package interaction

import "github.com/lixenwraith/dicetray/core"

// EventType is the pointer vocabulary the controller understands
type EventType uint8

const (
	PointerDown EventType = iota + 1
	PointerMove
	PointerUp
	PointerLeave
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "PointerDown"
	case PointerMove:
		return "PointerMove"
	case PointerUp:
		return "PointerUp"
	case PointerLeave:
		return "PointerLeave"
	default:
		return "None"
	}
}

// Event is a pointer event in window coordinates
type Event struct {
	Type EventType
	X, Y int
}

// TouchType is the touch vocabulary
type TouchType uint8

const (
	TouchStart TouchType = iota + 1
	TouchMove
	TouchEnd
	TouchCancel
)

// TouchEvent carries the active touch points, End and Cancel usually carry none
type TouchEvent struct {
	Type    TouchType
	Touches []core.Point
}

// TouchNormalizer maps touch input onto pointer events
// The first touch point drives the gesture; End and Cancel reuse the last
// known point since they carry no coordinates of their own
type TouchNormalizer struct {
	last core.Point
	seen bool
}

// Normalize converts ev, false if it carries nothing usable
func (n *TouchNormalizer) Normalize(ev TouchEvent) (Event, bool) {
	switch ev.Type {
	case TouchStart, TouchMove:
		if len(ev.Touches) == 0 {
			return Event{}, false
		}
		n.last = ev.Touches[0]
		n.seen = true
		typ := PointerDown
		if ev.Type == TouchMove {
			typ = PointerMove
		}
		return Event{Type: typ, X: n.last.X, Y: n.last.Y}, true

	case TouchEnd, TouchCancel:
		if !n.seen {
			return Event{}, false
		}
		n.seen = false
		typ := PointerUp
		if ev.Type == TouchCancel {
			typ = PointerLeave
		}
		return Event{Type: typ, X: n.last.X, Y: n.last.Y}, true
	}
	return Event{}, false
}
