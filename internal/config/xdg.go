// Package config provides path resolution and the settings provider.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const appName = "typedojo"

// Paths lists the files the application reads and writes. Environment
// variables override the XDG defaults.
type Paths struct {
	SettingsFile string `env:"TYPEDOJO_CONFIG"`
	DBFile       string `env:"TYPEDOJO_DB"`
	WordList     string `env:"TYPEDOJO_WORDS"`
	LogFile      string `env:"TYPEDOJO_LOG"`
}

// DefaultPaths returns XDG-based paths.
func DefaultPaths() Paths {
	return Paths{
		SettingsFile: DefaultConfigPath(),
		DBFile:       DefaultDBPath(),
		WordList:     DefaultWordListPath(),
		LogFile:      DefaultLogPath(),
	}
}

// ResolvePaths applies environment overrides to the default paths.
func ResolvePaths() (Paths, error) {
	paths := DefaultPaths()
	if err := env.Parse(&paths); err != nil {
		return Paths{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return paths, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultWordListPath returns the default dictionary location.
func DefaultWordListPath() string {
	return filepath.Join(XDGConfigHome(), appName, "words.json")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default settings file path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "settings.toml")
}

// DefaultLogPath returns the log file used while the TUI owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}
