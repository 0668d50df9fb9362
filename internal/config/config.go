// Package config loads and saves the persistent app configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Launch options: which queue the reader opens with. The launch option is
// the only piece of queue state that survives restarts; queue contents are
// always rebuilt.
const (
	LaunchMain      = "main"
	LaunchAll       = "all"
	LaunchFavorites = "favorites"
	LaunchStarred   = "starred"
	// LaunchSavedPrefix + a saved-queue ID restores that queue on start.
	LaunchSavedPrefix = "saved:"
)

// Config is the persistent application configuration.
type Config struct {
	// LibraryPath is the root of the quote library on disk.
	LibraryPath string `json:"library_path"`

	// Launch selects the queue built on startup.
	Launch string `json:"launch"`

	// ShowSatire includes satire-flagged works in feeds.
	ShowSatire bool `json:"show_satire"`

	// Theme selects the UI color theme.
	Theme string `json:"theme"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		LibraryPath: filepath.Join(home, "quotes"),
		Launch:      LaunchMain,
		ShowSatire:  true,
		Theme:       "dark",
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quotedeck", "config.json")
}

// DataDir returns the directory holding the shared database and logs.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quotedeck")
}

// DBPath returns the path of the shared SQLite database.
func DBPath() string {
	return filepath.Join(DataDir(), "quotedeck.db")
}

// Load reads config from disk, or returns defaults. A corrupt file also
// falls back to defaults rather than failing startup.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	if cfg.Launch == "" {
		cfg.Launch = LaunchMain
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnv lets QUOTEDECK_LIBRARY override the configured library path.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("QUOTEDECK_LIBRARY")); v != "" {
		c.LibraryPath = v
	}
}
