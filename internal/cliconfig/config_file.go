package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	Title         string   `toml:"title"`
	Format        string   `toml:"format"`
	LogLevel      string   `toml:"log_level"`
	Inbox         string   `toml:"inbox"`
	InboxDebounce string   `toml:"inbox_debounce"`
	MaxTodos      int      `toml:"max_todos"`
	Seed          []string `toml:"seed"`
	Quiet         *bool    `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.rxtodo/config.toml, or "" if the user home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rxtodo", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg. Flags in
// changed keep their values.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("title", fc.Title, &cfg.Title)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("inbox", fc.Inbox, &cfg.Inbox)
	if err := s.setDuration("inbox-debounce", fc.InboxDebounce, &cfg.InboxDebounce); err != nil {
		return err
	}
	s.setInt("max-todos", fc.MaxTodos, &cfg.MaxTodos)
	s.setStrings("seed", fc.Seed, &cfg.Seed)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
