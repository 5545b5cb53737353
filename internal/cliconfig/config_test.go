package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != FormatText {
		t.Errorf("Format = %v, want %v", cfg.Format, FormatText)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.InboxDebounce != 50*time.Millisecond {
		t.Errorf("InboxDebounce = %v, want 50ms", cfg.InboxDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantErr    bool
		wantFormat string
		wantLevel  string
	}{
		{
			name:       "normalizes format and level",
			config:     Config{Format: " YAML ", LogLevel: "DEBUG"},
			wantFormat: FormatYAML,
			wantLevel:  "debug",
		},
		{
			name:       "empty values fall back",
			config:     Config{},
			wantFormat: FormatText,
			wantLevel:  "info",
		},
		{
			name:    "unknown format",
			config:  Config{Format: "xml"},
			wantErr: true,
		},
		{
			name:    "negative max todos",
			config:  Config{MaxTodos: -1},
			wantErr: true,
		},
		{
			name:    "negative debounce",
			config:  Config{InboxDebounce: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if cfg.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", cfg.Format, tt.wantFormat)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
title = "groceries"
format = "json"
inbox_debounce = "200ms"
max_todos = 5
seed = ["milk", "eggs"]
quiet = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error: %v", err)
	}
	if fc.Title != "groceries" || fc.Format != "json" || fc.MaxTodos != 5 {
		t.Errorf("unexpected file config: %+v", fc)
	}
	if !reflect.DeepEqual(fc.Seed, []string{"milk", "eggs"}) {
		t.Errorf("Seed = %v, want [milk eggs]", fc.Seed)
	}
	if fc.Quiet == nil || !*fc.Quiet {
		t.Errorf("Quiet = %v, want true", fc.Quiet)
	}

	if !FileExists(path) {
		t.Error("FileExists() = false for written file")
	}
	if FileExists(filepath.Join(t.TempDir(), "missing.toml")) {
		t.Error("FileExists() = true for missing file")
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	quiet := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid values",
			fileConfig: FileConfig{
				Title:         "groceries",
				Format:        "yaml",
				Inbox:         "/tmp/inbox.txt",
				InboxDebounce: "1s",
				MaxTodos:      10,
				Seed:          []string{"milk"},
				Quiet:         &quiet,
			},
			changed: map[string]bool{},
			expected: Config{
				Title:         "groceries",
				Format:        "yaml",
				Inbox:         "/tmp/inbox.txt",
				InboxDebounce: time.Second,
				MaxTodos:      10,
				Seed:          []string{"milk"},
				Quiet:         true,
			},
		},
		{
			name:       "respects changed flags",
			fileConfig: FileConfig{Title: "file", Format: "json"},
			changed:    map[string]bool{"format": true},
			initial:    Config{Format: "text"},
			expected:   Config{Title: "file", Format: "text"},
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{InboxDebounce: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"RXTODO_TITLE":          "env",
				"RXTODO_FORMAT":         "json",
				"RXTODO_LOG_LEVEL":      "warn",
				"RXTODO_INBOX_DEBOUNCE": "10ms",
				"RXTODO_MAX_TODOS":      "3",
				"RXTODO_SEED":           "a, b,,c",
				"RXTODO_QUIET":          "1",
			},
			changed: map[string]bool{},
			expected: Config{
				Title:         "env",
				Format:        "json",
				LogLevel:      "warn",
				InboxDebounce: 10 * time.Millisecond,
				MaxTodos:      3,
				Seed:          []string{"a", "b", "c"},
				Quiet:         true,
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"RXTODO_TITLE": "env"},
			changed:  map[string]bool{"title": true},
			initial:  Config{Title: "flag"},
			expected: Config{Title: "flag"},
		},
		{
			name:    "invalid max todos",
			envVars: map[string]string{"RXTODO_MAX_TODOS": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Precedence: flags > env > file > defaults.
func TestConfigPrecedence(t *testing.T) {
	t.Setenv("RXTODO_FORMAT", "yaml")
	t.Setenv("RXTODO_TITLE", "env")

	fc := FileConfig{Title: "file", Format: "json", MaxTodos: 7}
	changed := map[string]bool{"title": true}

	cfg := DefaultConfig()
	cfg.Title = "flag"

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Title != "flag" {
		t.Errorf("Title = %v, want flag (flag should win)", cfg.Title)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %v, want yaml (env should override file)", cfg.Format)
	}
	if cfg.MaxTodos != 7 {
		t.Errorf("MaxTodos = %v, want 7 (file should set)", cfg.MaxTodos)
	}
}
