// Package cliconfig loads the rxtodo command configuration from defaults,
// a TOML file, RXTODO_* environment variables and command-line flags, in
// increasing order of precedence.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Output formats understood by the renderer.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds CLI configuration for rxtodo.
type Config struct {
	Title    string
	Format   string
	LogLevel string

	// Inbox is an optional file whose appended lines are imported as
	// entries.
	Inbox         string
	InboxDebounce time.Duration

	MaxTodos int
	Seed     []string
	Quiet    bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Title:         "todos",
		Format:        FormatText,
		LogLevel:      "info",
		InboxDebounce: 50 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatText
	}
	switch c.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("format must be one of text, yaml, json (got %q)", c.Format)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.MaxTodos < 0 {
		return fmt.Errorf("max-todos must not be negative")
	}
	if c.InboxDebounce < 0 {
		return fmt.Errorf("inbox debounce must not be negative")
	}
	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is applied only if its flag was not set explicitly.
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

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setDuration parses and sets a duration if valid and flag not changed.
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

// setStringsFromString splits a comma-separated list.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}
