package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/dicetray/board"
	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
	"github.com/lixenwraith/dicetray/die"
	"github.com/lixenwraith/dicetray/grid"
)

// State is a saved tray
type State struct {
	Dice []DieState `yaml:"dice"`
}

// DieState is one saved die
// X and Y are surface units, ignored unless Placed
type DieState struct {
	ID       string       `yaml:"id"`
	Pips     int          `yaml:"pips"`
	Color    string       `yaml:"color"`
	Placed   bool         `yaml:"placed"`
	X        int          `yaml:"x"`
	Y        int          `yaml:"y"`
	Rotation int          `yaml:"rotation"`
	Holder   *PlayerState `yaml:"holder,omitempty"`
}

// PlayerState is a saved holder
type PlayerState struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// CaptureState snapshots the dice on b
func CaptureState(b *board.Board) State {
	st := State{Dice: make([]DieState, 0, b.Len())}
	for _, d := range b.Dice() {
		ds := DieState{
			ID:       d.ID(),
			Pips:     d.Pips(),
			Color:    d.Color().Hex(),
			Rotation: d.Rotation(),
		}
		if p, ok := d.Coordinates(); ok {
			ds.Placed, ds.X, ds.Y = true, p.X, p.Y
		}
		if h, ok := d.HeldBy(); ok {
			ds.Holder = &PlayerState{ID: h.ID, Name: h.Name, Color: h.Color.Hex()}
		}
		st.Dice = append(st.Dice, ds)
	}
	return st
}

// RestoreState adds the saved dice to b
// Saved positions outside the current grid, off a cell corner or sharing a
// cell are dropped and those dice are laid out fresh
func RestoreState(b *board.Board, st State) error {
	dice := make([]*die.Die, 0, len(st.Dice))
	taken := make(map[grid.Cell]bool, len(st.Dice))
	g := b.Grid()

	for i, ds := range st.Dice {
		if ds.Pips < constant.MinPips || ds.Pips > constant.MaxPips {
			return &core.ConfigError{Field: fmt.Sprintf("dice[%d].pips", i), Value: ds.Pips, Reason: "out of range"}
		}
		color, err := core.ParseHex(ds.Color)
		if err != nil {
			return &core.ConfigError{Field: fmt.Sprintf("dice[%d].color", i), Value: ds.Color, Reason: err.Error()}
		}

		opts := []die.Option{die.WithID(ds.ID), die.WithPips(ds.Pips), die.WithColor(color)}
		if ds.Holder != nil {
			hc, err := core.ParseHex(ds.Holder.Color)
			if err != nil {
				return &core.ConfigError{Field: fmt.Sprintf("dice[%d].holder.color", i), Value: ds.Holder.Color, Reason: err.Error()}
			}
			// Restored holds do not emit Held
			opts = append(opts, die.WithHolder(die.Player{ID: ds.Holder.ID, Name: ds.Holder.Name, Color: hc}))
		}

		d := die.New(b.Bus(), opts...)
		d.SetRotation(ds.Rotation)

		if ds.Placed && ds.X >= 0 && ds.Y >= 0 {
			p := core.Point{X: ds.X, Y: ds.Y}
			c := g.CellAt(p)
			if g.Contains(c) && g.Coordinates(c) == p && !taken[c] {
				taken[c] = true
				d.SetCoordinates(p)
			}
		}

		dice = append(dice, d)
	}

	if err := b.Adopt(dice...); err != nil {
		return err
	}
	if b.NeedsLayout() {
		return b.Layout()
	}
	b.Render()
	return nil
}

// SaveState writes st as YAML
func SaveState(path string, st State) error {
	data, err := yaml.Marshal(&st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", path, err)
	}
	return nil
}

// LoadState reads a YAML tray; a missing file is an empty tray
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state %s: %w", path, err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode state %s: %w", path, err)
	}
	return st, nil
}
