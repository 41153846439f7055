// Package config holds suyand's typed configuration: YAML-backed
// settings with clamped setters and a change-notification fan-out, plus
// theme-file schema validation and filesystem hot reload.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Layout holds candidate-window layout knobs.
type Layout struct {
	PageSize     int    `yaml:"page_size"`
	Direction    string `yaml:"direction"`
	ExpandedRows int    `yaml:"expanded_rows"`
}

// ClipboardSettings holds clipboard-history retention knobs.
type ClipboardSettings struct {
	Enabled    bool `yaml:"enabled"`
	MaxAgeDays int  `yaml:"max_age_days"`
	MaxCount   int  `yaml:"max_count"`
}

// Config is the full daemon configuration.
type Config struct {
	Layout    Layout            `yaml:"layout"`
	ThemeName string            `yaml:"theme"`
	Clipboard ClipboardSettings `yaml:"clipboard"`

	DatabasePath string `yaml:"database_path"`
	LogPath      string `yaml:"log_path"`
	ThemesDir    string `yaml:"themes_dir"`
}

// DefaultConfig returns a configuration with sensible defaults rooted
// at SuYanDir().
func DefaultConfig() *Config {
	dir := SuYanDir()
	return &Config{
		Layout:    Layout{PageSize: 9, Direction: "horizontal", ExpandedRows: 3},
		ThemeName: "default",
		Clipboard: ClipboardSettings{Enabled: true, MaxAgeDays: 30, MaxCount: 500},

		DatabasePath: filepath.Join(dir, "clipboard.db"),
		LogPath:      filepath.Join(dir, "logs", "suyand.log"),
		ThemesDir:    filepath.Join(dir, "themes"),
	}
}

// SuYanDir returns the base per-user directory for suyand's state,
// matching the platform convention the logging package's
// defaultLogPath() already follows.
func SuYanDir() string {
	switch runtime.GOOS {
	case "windows":
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, "SuYan")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "SuYan")
		}
	default:
		if base := os.Getenv("XDG_STATE_HOME"); base != "" {
			return filepath.Join(base, "suyan")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".suyan")
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(SuYanDir(), "config.yaml")
}

// Load reads configuration from path, or from ConfigPath() if path is
// empty. A missing file is not an error: defaults are returned as-is,
// matching the "simple rewrite acceptable" save policy — unknown keys
// from a hand-edited file are not round-tripped.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as
// needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration for internally-inconsistent
// values that clamped setters can't catch because they only apply at
// mutation time, not at load time.
func (c *Config) Validate() error {
	if c.Layout.PageSize < 1 || c.Layout.PageSize > 10 {
		return ErrPageSizeRange
	}
	if c.DatabasePath == "" {
		return ErrDatabasePathRequired
	}
	return nil
}

// EnsureDirectories creates every directory Config's paths live under.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.DatabasePath),
		filepath.Dir(c.LogPath),
		c.ThemesDir,
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return nil
}
