package config

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.UI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui: %w", err))
	}
	if err := c.Tail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tail: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return errors.New("binary must not be empty")
	}
	if strings.ContainsAny(c.Interface, " \t") {
		return fmt.Errorf("invalid interface: %q", c.Interface)
	}
	if c.StartupDelayMs < 0 {
		return errors.New("startup_delay_ms must be non-negative")
	}
	if c.ReplyTimeoutMs < 0 {
		return errors.New("reply_timeout_ms must be non-negative")
	}
	if c.ShutdownTimeoutMs < 0 {
		return errors.New("shutdown_timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks UIConfig for errors.
func (c *UIConfig) Validate() error {
	switch c.Mode {
	case "", "keys", "form":
		// valid
	default:
		return fmt.Errorf("invalid mode: %s (must be keys or form)", c.Mode)
	}
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	return nil
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	if c.Lines < 0 {
		return errors.New("lines must be non-negative")
	}
	if c.Template != "" {
		if _, err := template.New("tail").Parse(c.Template); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
