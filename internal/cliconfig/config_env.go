package cliconfig

import "os"

// ApplyEnvConfig applies configuration from RXTODO_* environment
// variables. Flags in changed keep their values.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("title", os.Getenv("RXTODO_TITLE"), &cfg.Title)
	s.setString("format", os.Getenv("RXTODO_FORMAT"), &cfg.Format)
	s.setString("log-level", os.Getenv("RXTODO_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("inbox", os.Getenv("RXTODO_INBOX"), &cfg.Inbox)
	if err := s.setDuration("inbox-debounce", os.Getenv("RXTODO_INBOX_DEBOUNCE"), &cfg.InboxDebounce); err != nil {
		return err
	}
	if err := s.setIntFromString("max-todos", os.Getenv("RXTODO_MAX_TODOS"), &cfg.MaxTodos); err != nil {
		return err
	}
	s.setStringsFromString("seed", os.Getenv("RXTODO_SEED"), &cfg.Seed)
	s.setBoolFromString("quiet", os.Getenv("RXTODO_QUIET"), &cfg.Quiet)

	return nil
}
