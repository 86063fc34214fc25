package config

import "time"

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Binary:            "vlc",
			Interface:         "rc",
			StartupDelayMs:    1000,
			ReplyTimeoutMs:    5000,
			ShutdownTimeoutMs: 3000,
		},
		UI: UIConfig{
			Mode:  "keys",
			Theme: "auto",
			Emoji: true,
		},
		Tail: TailConfig{
			Lines: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}
	if c.Player.Interface == "" {
		c.Player.Interface = d.Player.Interface
	}
	if c.Player.StartupDelayMs == 0 {
		c.Player.StartupDelayMs = d.Player.StartupDelayMs
	}
	if c.Player.ShutdownTimeoutMs == 0 {
		c.Player.ShutdownTimeoutMs = d.Player.ShutdownTimeoutMs
	}

	// UI
	if c.UI.Mode == "" {
		c.UI.Mode = d.UI.Mode
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}

	// Tail
	if c.Tail.Lines == 0 {
		c.Tail.Lines = d.Tail.Lines
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// StartupDelay returns the pause between launching the player and reading its banner.
func (c *PlayerConfig) StartupDelay() time.Duration {
	return time.Duration(c.StartupDelayMs) * time.Millisecond
}

// ReplyTimeout returns how long a single reply read may block. Zero means no limit.
func (c *PlayerConfig) ReplyTimeout() time.Duration {
	return time.Duration(c.ReplyTimeoutMs) * time.Millisecond
}

// ShutdownTimeout returns how long to wait for the player to exit after quit.
func (c *PlayerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}
