// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Moods      map[string]MoodOverride `toml:"moods"`
	Sounds     SoundsConfig            `toml:"sounds"`
	Animations AnimationsConfig        `toml:"animations"`
	Streak     StreakConfig            `toml:"streak"`
}

// MoodOverride replaces the built-in theme/sound for one mood.
type MoodOverride struct {
	Theme *string `toml:"theme"`
	Sound *string `toml:"sound"`
}

// SoundsConfig maps ambient sound settings.
type SoundsConfig struct {
	Volume           *int    `toml:"volume"`
	Enabled          *bool   `toml:"enabled"`
	StreamingEnabled *bool   `toml:"streaming-enabled"`
	Player           *string `toml:"player"`
}

// AnimationsConfig maps animation settings.
type AnimationsConfig struct {
	Enabled *bool `toml:"enabled"`
}

// StreakConfig maps streak tracking settings.
type StreakConfig struct {
	Enabled  *bool    `toml:"enabled"`
	MinChars *int     `toml:"min-chars"`
	Watch    []string `toml:"watch"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Settings holds the effective runtime configuration after merging
// defaults, the config file, and CLI flags.
type Settings struct {
	Volume           int
	SoundsEnabled    bool
	StreamingEnabled bool
	Player           string
	Animations       bool
	StreakEnabled    bool
	MinChars         int
	WatchDirs        []string
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Volume:           50,
		SoundsEnabled:    true,
		StreamingEnabled: true,
		Player:           "mpv",
		Animations:       true,
		StreakEnabled:    true,
		MinChars:         10,
		WatchDirs:        []string{"."},
	}
}

// Merge applies the file config on top of the settings. Unset fields
// keep their current values.
func (s Settings) Merge(cfg FileConfig) Settings {
	if cfg.Sounds.Volume != nil {
		s.Volume = *cfg.Sounds.Volume
	}
	if cfg.Sounds.Enabled != nil {
		s.SoundsEnabled = *cfg.Sounds.Enabled
	}
	if cfg.Sounds.StreamingEnabled != nil {
		s.StreamingEnabled = *cfg.Sounds.StreamingEnabled
	}
	if cfg.Sounds.Player != nil {
		s.Player = *cfg.Sounds.Player
	}
	if cfg.Animations.Enabled != nil {
		s.Animations = *cfg.Animations.Enabled
	}
	if cfg.Streak.Enabled != nil {
		s.StreakEnabled = *cfg.Streak.Enabled
	}
	if cfg.Streak.MinChars != nil {
		s.MinChars = *cfg.Streak.MinChars
	}
	if len(cfg.Streak.Watch) > 0 {
		s.WatchDirs = append([]string(nil), cfg.Streak.Watch...)
	}
	return s
}

// Validate rejects out-of-range settings.
func (s Settings) Validate() error {
	if s.Volume < 0 || s.Volume > 100 {
		return fmt.Errorf("sounds.volume must be between 0 and 100")
	}
	if s.MinChars < 0 {
		return fmt.Errorf("streak.min-chars must be >= 0")
	}
	if s.Player == "" {
		return fmt.Errorf("sounds.player must not be empty")
	}
	return nil
}
