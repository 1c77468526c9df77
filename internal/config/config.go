package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cadence/internal/playlist"
)

const (
	appName   = "cadence"
	envPrefix = "CADENCE_"

	defaultVolume   = 0.4
	defaultSeekStep = 5 * time.Second
)

type Config struct {
	Database string  `koanf:"database" env:"DATABASE"` // SQLite catalog file
	Volume   float64 `koanf:"volume"   env:"VOLUME"`   // startup volume, 0.0 to 1.0
	Repeat   string  `koanf:"repeat"   env:"REPEAT"`   // "none", "one" or "all"
	LogFile  string  `koanf:"log_file" env:"LOG_FILE"`

	// Desktop integration (Linux only; ignored elsewhere)
	MPRIS         bool `koanf:"mpris"         env:"MPRIS"`
	Notifications bool `koanf:"notifications" env:"NOTIFICATIONS"`

	SeekStep time.Duration `koanf:"seek_step" env:"SEEK_STEP"`
}

// Default returns the configuration used when no file or variable sets a key.
func Default() *Config {
	return &Config{
		Database:      filepath.Join(xdg.DataHome, appName, appName+".db"),
		Volume:        defaultVolume,
		Repeat:        playlist.RepeatNone.String(),
		LogFile:       filepath.Join(xdg.StateHome, appName, appName+".log"),
		MPRIS:         true,
		Notifications: true,
		SeekStep:      defaultSeekStep,
	}
}

func Load() (*Config, error) {
	return load(getConfigPaths(), env.Options{Prefix: envPrefix})
}

func load(paths []string, envOpts env.Options) (*Config, error) {
	k := koanf.New(".")

	// Config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Environment overrides files
	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Database = expandPath(c.Database)
	c.LogFile = expandPath(c.LogFile)

	c.Volume = max(0, min(1, c.Volume))
	if c.SeekStep <= 0 {
		c.SeekStep = defaultSeekStep
	}

	mode, err := playlist.ParseRepeatMode(c.Repeat)
	if err != nil {
		return err
	}
	c.Repeat = mode.String()
	return nil
}

// RepeatMode returns the configured startup repeat mode.
func (c *Config) RepeatMode() playlist.RepeatMode {
	mode, _ := playlist.ParseRepeatMode(c.Repeat)
	return mode
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cadence/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
