package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.vlcmarkrc, $XDG_CONFIG_HOME/vlcmark/config.toml, ~/.config/vlcmark/config.toml
func Load() (*Config, error) {
	// Decode over the defaults so an explicit reply_timeout_ms = 0 survives.
	cfg := Default()

	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "".
func FindConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where `config init` writes a new file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vlcmarkrc"
	}
	return filepath.Join(home, ".vlcmarkrc")
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".vlcmarkrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "vlcmark", "config.toml"))
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("VLCMARK_PLAYER_BINARY"); v != "" {
		cfg.Player.Binary = v
	}
	if v := os.Getenv("VLCMARK_PLAYER_REPLY_TIMEOUT_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.ReplyTimeoutMs = i
		}
	}

	// UI
	if v := os.Getenv("VLCMARK_UI_MODE"); v != "" {
		cfg.UI.Mode = v
	}

	// Log
	if v := os.Getenv("VLCMARK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VLCMARK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
