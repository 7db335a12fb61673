// Package config loads the shell's optional startup file. The YAML
// struct and default-filling shape follows
// sdfpt05-shell/internal/config/config.go, adapted to the fields this
// shell actually needs; the missing-file short-circuit follows
// sdfpt05-shell/main.go's loadHistory instead, since that repo's own
// config.Load treats a missing file as fatal.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config holds the few knobs spec.md's minimalism leaves room for: the
// name printed in diagnostics, and where/whether history persists.
type Config struct {
	ProgramName    string `yaml:"program_name"`
	HistoryFile    string `yaml:"history_file"`
	HistoryEnabled *bool  `yaml:"history_enabled"`
}

const defaultProgramName = "yash"

// Load reads file as YAML and fills in defaults for anything left unset.
// A missing file is not an error: the shell simply runs with defaults.
func Load(file string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.ProgramName == "" {
		cfg.ProgramName = defaultProgramName
	}

	if cfg.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.HistoryFile = filepath.Join(home, "."+defaultProgramName+"_history")
	}

	if cfg.HistoryEnabled == nil {
		enabled := true
		cfg.HistoryEnabled = &enabled
	}

	return cfg, nil
}

// HistoryPersistenceEnabled reports whether line-editor history should be
// written to HistoryFile.
func (c *Config) HistoryPersistenceEnabled() bool {
	return c.HistoryEnabled == nil || *c.HistoryEnabled
}
