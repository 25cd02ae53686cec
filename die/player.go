package die

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/dicetray/core"
)

// Player is whoever holds dice
type Player struct {
	ID    string
	Name  string
	Color core.RGB
}

// NewPlayer creates a player with a fresh identity
func NewPlayer(name string, color core.RGB) Player {
	return Player{ID: uuid.NewString(), Name: name, Color: color}
}

// Equal reports same identity, or same name and color
func (p Player) Equal(o Player) bool {
	if p.ID != "" && p.ID == o.ID {
		return true
	}
	return p.Name == o.Name && p.Color == o.Color
}

func (p Player) String() string {
	return p.Name
}
