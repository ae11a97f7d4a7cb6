package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/anggasct/xsm"
)

// Log output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds CLI configuration for xsm.
type Config struct {
	Frames      int
	Delta       time.Duration
	HistorySize int
	SyncMode    string
	Debug       bool
	Strict      bool

	Script     string
	Animations string
	Watch      bool

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Frames:      0, // Taken from the script during Validate
		Delta:       time.Second / 60,
		HistorySize: xsm.DefaultHistorySize,
		SyncMode:    xsm.SyncIdle.String(),
		LogLevel:    "info",
		LogFormat:   FormatConsole,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative")
	}
	if c.Delta <= 0 {
		return fmt.Errorf("delta must be positive")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive")
	}
	if _, err := xsm.ParseSyncMode(c.SyncMode); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.LogFormat != FormatConsole && c.LogFormat != FormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", FormatConsole, FormatJSON, c.LogFormat)
	}
	return nil
}

// MachineOptions returns the machine options the configuration selects.
// Call Validate first.
func (c *Config) MachineOptions() []xsm.Option {
	mode, _ := xsm.ParseSyncMode(c.SyncMode)
	return []xsm.Option{
		xsm.WithHistorySize(c.HistorySize),
		xsm.WithSyncMode(mode),
		xsm.WithDebug(c.Debug),
		xsm.WithStrictEntry(c.Strict),
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
