// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player PlayerConfig `toml:"player"`
	State  StateConfig  `toml:"state"`
}

// PlayerConfig maps player-related settings.
type PlayerConfig struct {
	Mpv      *string  `toml:"mpv"`
	MpvArgs  []string `toml:"mpv-args"`
	Autoplay *bool    `toml:"autoplay"`
}

// StateConfig maps persistence-related settings.
type StateConfig struct {
	Path    *string `toml:"path"`
	LogPath *string `toml:"log-path"`
	Debug   *bool   `toml:"debug"`
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
