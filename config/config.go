// Package config loads tray settings from file and environment, and
// persists the tray between runs.
package config

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/dicetray/board"
	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/core"
)

// EnvPrefix namespaces environment overrides, e.g. DICETRAY_CELL_SIZE
const EnvPrefix = "DICETRAY"

// Config is the user-facing configuration
// Width and Height of zero follow the terminal size
type Config struct {
	Width        int           `mapstructure:"width"`
	Height       int           `mapstructure:"height"`
	CellSize     int           `mapstructure:"cell_size"`
	Dispersion   float64       `mapstructure:"dispersion"`
	HoldDuration time.Duration `mapstructure:"hold_duration"`
	Rotation     bool          `mapstructure:"rotation"`
	Draggable    bool          `mapstructure:"draggable"`
	Holdable     bool          `mapstructure:"holdable"`
	Dice         int           `mapstructure:"dice"`
	Seed         int64         `mapstructure:"seed"`
	Sound        bool          `mapstructure:"sound"`
	Debug        bool          `mapstructure:"debug"`
	PlayerName   string        `mapstructure:"player_name"`
	PlayerColor  string        `mapstructure:"player_color"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		CellSize:     constant.DefaultCellSize,
		Dispersion:   constant.DefaultDispersion,
		HoldDuration: constant.DefaultHoldDuration,
		Rotation:     true,
		Draggable:    true,
		Holdable:     true,
		Dice:         constant.DefaultDiceCount,
		Sound:        true,
		PlayerName:   constant.DefaultPlayerName,
		PlayerColor:  constant.DefaultPlayerColor,
	}
}

// Load reads defaults, then the file at path if non-empty, then DICETRAY_*
// environment variables, and validates the result
func Load(path string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	vp := viper.New()
	setDefaults(vp, Default())

	if path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		logger.Printf("config: loaded %s", vp.ConfigFileUsed())
	}

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(vp *viper.Viper, d Config) {
	vp.SetDefault("width", d.Width)
	vp.SetDefault("height", d.Height)
	vp.SetDefault("cell_size", d.CellSize)
	vp.SetDefault("dispersion", d.Dispersion)
	vp.SetDefault("hold_duration", d.HoldDuration)
	vp.SetDefault("rotation", d.Rotation)
	vp.SetDefault("draggable", d.Draggable)
	vp.SetDefault("holdable", d.Holdable)
	vp.SetDefault("dice", d.Dice)
	vp.SetDefault("seed", d.Seed)
	vp.SetDefault("sound", d.Sound)
	vp.SetDefault("debug", d.Debug)
	vp.SetDefault("player_name", d.PlayerName)
	vp.SetDefault("player_color", d.PlayerColor)
}

// Validate rejects values the board cannot use
func (c Config) Validate() error {
	if c.Width < 0 {
		return &core.ConfigError{Field: "width", Value: c.Width, Reason: "must not be negative"}
	}
	if c.Height < 0 {
		return &core.ConfigError{Field: "height", Value: c.Height, Reason: "must not be negative"}
	}
	if c.Dice < 0 {
		return &core.ConfigError{Field: "dice", Value: c.Dice, Reason: "must not be negative"}
	}
	if err := core.RequirePositive("cell_size", c.CellSize); err != nil {
		return err
	}
	if err := core.RequirePositive("dispersion", c.Dispersion); err != nil {
		return err
	}
	if err := core.RequirePositive("hold_duration", c.HoldDuration); err != nil {
		return err
	}
	if strings.TrimSpace(c.PlayerName) == "" {
		return &core.ConfigError{Field: "player_name", Value: c.PlayerName, Reason: "must not be empty"}
	}
	if _, err := core.ParseHex(c.PlayerColor); err != nil {
		return &core.ConfigError{Field: "player_color", Value: c.PlayerColor, Reason: err.Error()}
	}
	return nil
}

// BoardSettings builds board settings, filling a zero width or height
// from the given surface size
func (c Config) BoardSettings(width, height int) board.Settings {
	s := board.DefaultSettings(width, height)
	if c.Width > 0 {
		s.Width = c.Width
	}
	if c.Height > 0 {
		s.Height = c.Height
	}
	s.CellSize = c.CellSize
	s.Dispersion = c.Dispersion
	s.HoldDuration = c.HoldDuration
	s.Rotation = c.Rotation
	s.Draggable = c.Draggable
	s.Holdable = c.Holdable
	return s
}

// Color returns the parsed player color, Validate guarantees it parses
func (c Config) Color() core.RGB {
	rgb, err := core.ParseHex(c.PlayerColor)
	if err != nil {
		rgb, _ = core.ParseHex(constant.DefaultPlayerColor)
	}
	return rgb
}
