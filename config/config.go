// Package config loads the static TOML configuration: polling interval
// and icon visual style. Flags override file values; a missing file
// means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Interval   time.Duration
	Style      string
	IconSize   int
	Foreground string
	Background string
	LogPath    string
}

func Default() Config {
	return Config{
		Interval:   time.Second,
		Style:      "numeral",
		IconSize:   64,
		Foreground: "#000000",
	}
}

// fileConfig is the on-disk shape. Interval is a Go duration string
// ("2s", "500ms").
type fileConfig struct {
	Interval   string `toml:"interval"`
	Style      string `toml:"style"`
	IconSize   int    `toml:"icon_size"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	LogPath    string `toml:"log_path"`
}

// DefaultPath returns the OS-conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "battray", "config.toml"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "battray", "config.toml"), nil
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "battray", "config.toml"), nil
}

// Load reads path and merges it over the defaults. A missing file is an
// error only to the caller; use LoadDefault when the file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return Config{}, fmt.Errorf("config interval: %w", err)
		}
		cfg.Interval = d
	}
	if fc.Style != "" {
		cfg.Style = fc.Style
	}
	if fc.IconSize != 0 {
		cfg.IconSize = fc.IconSize
	}
	if fc.Foreground != "" {
		cfg.Foreground = fc.Foreground
	}
	if fc.Background != "" {
		cfg.Background = fc.Background
	}
	if fc.LogPath != "" {
		cfg.LogPath = fc.LogPath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads from the conventional path, falling back to defaults
// when no file exists there.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Interval)
	}
	switch c.Style {
	case "numeral", "gauge":
	default:
		return fmt.Errorf("unknown icon style %q (use numeral or gauge)", c.Style)
	}
	if c.IconSize < 16 || c.IconSize > 512 {
		return fmt.Errorf("icon size %d out of range [16, 512]", c.IconSize)
	}
	return nil
}
