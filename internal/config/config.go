package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LogLevel string `toml:"LogLevel"` // debug, info, warn, error
	LogFile  string `toml:"LogFile"`  // empty means stderr
	FileMode uint32 `toml:"FileMode"` // permissions for written png files
}

func defaults() *Config {
	return &Config{
		LogLevel: "info",
		FileMode: 0o644,
	}
}

// LoadConfig reads fn, falling back to defaults for a missing file or
// missing fields.
func LoadConfig(fn string) (*Config, error) {
	if fn == "" {
		fn = "config.toml"
	}
	config := defaults()
	_, err := toml.DecodeFile(fn, config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}
	// if any value is empty fill with default
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.FileMode == 0 {
		config.FileMode = 0o644
	}
	if _, err := config.Level(); err != nil {
		return nil, err
	}
	return config, nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LogLevel %q", c.LogLevel)
}

func (c *Config) Mode() os.FileMode {
	return os.FileMode(c.FileMode).Perm()
}
