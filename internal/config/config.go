// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Draft DraftConfig `toml:"draft"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma syntax highlighting theme used across the
	// TUI. UI chrome colors are derived from it via highlight.ThemePalette.
	// Defaults to "github-dark" if unset.
	SyntaxTheme string `toml:"syntax_theme"`

	// SplitRatio is the initial edit-pane width percentage in split view.
	// Clamped to [20, 80]; defaults to 50.
	SplitRatio int `toml:"split_ratio"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "github-dark" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "github-dark"
	}
	return u.SyntaxTheme
}

// SplitRatioOrDefault returns the configured split ratio or 50 if unset.
func (u UIConfig) SplitRatioOrDefault() int {
	if u.SplitRatio == 0 {
		return 50
	}
	return u.SplitRatio
}

// DraftConfig holds draft autosave settings.
type DraftConfig struct {
	// Path to the SQLite draft database. Defaults to <datadir>/drafts.db.
	Path string `toml:"path"`

	// AutosaveSeconds is the autosave tick interval. Defaults to 30.
	AutosaveSeconds int `toml:"autosave_seconds"`
}

// AutosaveSecondsOrDefault returns the configured interval or 30 if unset.
func (d DraftConfig) AutosaveSecondsOrDefault() int {
	if d.AutosaveSeconds <= 0 {
		return 30
	}
	return d.AutosaveSeconds
}

// PathOrDefault returns the configured draft db path, or drafts.db inside the
// data directory.
func (d DraftConfig) PathOrDefault() (string, error) {
	if d.Path != "" {
		return d.Path, nil
	}
	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drafts.db"), nil
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if r := c.UI.SplitRatio; r != 0 && (r < 20 || r > 80) {
		errs = append(errs, fmt.Errorf("ui.split_ratio=%d must be between 20 and 80", r))
	}
	if s := c.Draft.AutosaveSeconds; s < 0 {
		errs = append(errs, fmt.Errorf("draft.autosave_seconds=%d must not be negative", s))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"MARKPAD_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"MARKPAD_DRAFT_PATH", func(v string) {
			if v != "" {
				cfg.Draft.Path = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the markpad data directory (~/.config/markpad).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "markpad"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
