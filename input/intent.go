// Package input turns terminal events into tray intents.
package input

import "github.com/lixenwraith/dicetray/interaction"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, Esc, Ctrl+Q, Ctrl+C
	IntentResize      // Terminal resize event
	IntentToggleSound // m, Ctrl+S

	// Tray commands
	IntentThrow          // t, space
	IntentAddDie         // +, =
	IntentRemoveDie      // -, _
	IntentToggleRotation // r

	// Pointer gesture step, forwarded to the interaction controller
	IntentPointer
)

var intentNames = map[IntentType]string{
	IntentNone:           "none",
	IntentQuit:           "quit",
	IntentResize:         "resize",
	IntentToggleSound:    "toggle_sound",
	IntentThrow:          "throw",
	IntentAddDie:         "add_die",
	IntentRemoveDie:      "remove_die",
	IntentToggleRotation: "toggle_rotation",
	IntentPointer:        "pointer",
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}

// Intent is the parsed meaning of one terminal event
type Intent struct {
	Type IntentType

	// Pointer is set for IntentPointer, in terminal cells
	Pointer interaction.Event

	// Width and Height are set for IntentResize, in terminal cells
	Width, Height int
}
