package event

// Type identifies a tray notification
type Type int

const (
	// Thrown signals a die got new pips
	// Trigger: Die.Throw | Payload: nil
	Thrown Type = iota + 1

	// Held signals a player claimed a die
	// Trigger: Die.Hold | Payload: die.Player
	Held

	// Released signals the holder let go of a die
	// Trigger: Die.Release | Payload: die.Player
	Released

	// Dropped signals a drag ended and the die landed
	// Trigger: interaction.Controller | Payload: *DropPayload
	Dropped

	// LaidOut signals the board re-packed its dice
	// Trigger: Board.Layout | Payload: *LayoutPayload
	LaidOut
)

var typeNames = map[Type]string{
	Thrown:   "Thrown",
	Held:     "Held",
	Released: "Released",
	Dropped:  "Dropped",
	LaidOut:  "LaidOut",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseType resolves a name back to its Type
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
