// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

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

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "codevibe", "config.toml")
}

// DefaultThemeDir returns the directory scanned for user theme files.
func DefaultThemeDir() string {
	return filepath.Join(XDGConfigHome(), "codevibe", "themes")
}

// DefaultSoundDir returns the directory holding bundled sound assets.
func DefaultSoundDir() string {
	return filepath.Join(XDGDataHome(), "codevibe", "sounds")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "codevibe", "codevibe.db")
}

// DefaultLogPath returns the default path for the rotating log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), "codevibe", "codevibe.log")
}
