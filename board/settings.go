package board

import (
	"time"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
)

// Settings is the board configuration
// Width and Height are surface units; a zero Width or Height is rejected
type Settings struct {
	Width        int
	Height       int
	CellSize     int
	Dispersion   float64
	HoldDuration time.Duration
	Rotation     bool
	Draggable    bool
	Holdable     bool
}

// DefaultSettings returns a playable configuration for the given surface
func DefaultSettings(width, height int) Settings {
	return Settings{
		Width:        width,
		Height:       height,
		CellSize:     constant.DefaultCellSize,
		Dispersion:   constant.DefaultDispersion,
		HoldDuration: constant.DefaultHoldDuration,
		Rotation:     true,
		Draggable:    true,
		Holdable:     true,
	}
}

// Validate rejects non-positive sizes, dispersion and hold duration
func (s Settings) Validate() error {
	if err := core.RequirePositive("width", s.Width); err != nil {
		return err
	}
	if err := core.RequirePositive("height", s.Height); err != nil {
		return err
	}
	if err := core.RequirePositive("cellSize", s.CellSize); err != nil {
		return err
	}
	if err := core.RequirePositive("dispersion", s.Dispersion); err != nil {
		return err
	}
	return core.RequirePositive("holdDuration", s.HoldDuration)
}
