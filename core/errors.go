package core

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel every configuration failure wraps
// Test with errors.Is; use errors.As with *ConfigError for the field
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports a rejected configuration value
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// RequirePositive returns a *ConfigError unless v > 0
func RequirePositive[T ~int | ~int64 | ~float64](field string, v T) error {
	if v > 0 {
		return nil
	}
	return &ConfigError{Field: field, Value: v, Reason: "must be positive"}
}
