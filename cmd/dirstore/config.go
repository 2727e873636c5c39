package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the CLI configuration.
type Config struct {
	// BaseDir is the base directory named stores live under.
	// Defaults to the platform cache directory when empty.
	BaseDir string `json:"base_dir,omitempty"`

	// DefaultName is the store used when no --name flag is given.
	DefaultName string `json:"default_name,omitempty"`
}

// defaultConfigPath returns the config file location.
// Uses $XDG_CONFIG_HOME/dirstore/config.json if set, otherwise
// ~/.config/dirstore/config.json. Empty when neither resolves.
func defaultConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "dirstore", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "dirstore", "config.json")
	}

	return ""
}

// loadConfig reads the config file, tolerating comments and trailing
// commas (HuJSON). A missing file at the default location is not an
// error; an explicitly passed path must exist.
func loadConfig(path string, env map[string]string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath(env)
	}

	if path == "" {
		return Config{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	var cfg Config

	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}
