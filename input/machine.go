package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetray/interaction"
)

// Machine parses tcell events into intents
// Mouse reports are level-based (buttons currently down); the machine keeps
// the previous button state to recover press, drag and release edges
type Machine struct {
	keyTable *KeyTable

	pressed bool
	lastX   int
	lastY   int
}

// NewMachine creates a new input machine with the default key table
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// SetKeyTable replaces the key bindings
func (m *Machine) SetKeyTable(kt *KeyTable) {
	m.keyTable = kt
}

// Pressed reports whether the primary button is down
func (m *Machine) Pressed() bool {
	return m.pressed
}

// Reset forgets any pending press
func (m *Machine) Reset() {
	m.pressed = false
}

// Process parses a terminal event and returns an Intent
// Returns nil if the event carries no action
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, Width: w, Height: h}
	case *tcell.EventKey:
		if t := m.keyTable.Lookup(ev); t != IntentNone {
			return &Intent{Type: t}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused && m.pressed {
			m.pressed = false
			return m.pointer(interaction.PointerLeave, m.lastX, m.lastY)
		}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !m.pressed:
		m.pressed = true
		return m.pointer(interaction.PointerDown, x, y)
	case down && m.pressed:
		if x == m.lastX && y == m.lastY {
			return nil
		}
		return m.pointer(interaction.PointerMove, x, y)
	case !down && m.pressed:
		m.pressed = false
		return m.pointer(interaction.PointerUp, x, y)
	}
	// Hover without a button
	return nil
}

func (m *Machine) pointer(t interaction.EventType, x, y int) *Intent {
	m.lastX, m.lastY = x, y
	return &Intent{
		Type:    IntentPointer,
		Pointer: interaction.Event{Type: t, X: x, Y: y},
	}
}
