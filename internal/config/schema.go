package config

// Config is the root configuration structure.
type Config struct {
	Player PlayerConfig `toml:"player"`
	UI     UIConfig     `toml:"ui"`
	Tail   TailConfig   `toml:"tail"`
	Log    LogConfig    `toml:"log"`
}

// PlayerConfig holds settings for launching and talking to the player.
type PlayerConfig struct {
	Binary            string   `toml:"binary"`
	Interface         string   `toml:"interface"`
	ExtraArgs         []string `toml:"extra_args"`
	StartupDelayMs    int      `toml:"startup_delay_ms"`
	ReplyTimeoutMs    int      `toml:"reply_timeout_ms"` // 0 waits forever
	ShutdownTimeoutMs int      `toml:"shutdown_timeout_ms"`
}

// UIConfig holds settings for the annotation surface.
type UIConfig struct {
	Mode  string `toml:"mode"` // "keys" | "form"
	Theme string `toml:"theme"`
	Emoji bool   `toml:"emoji"`
}

// TailConfig holds settings for following an annotation log.
type TailConfig struct {
	Lines    int    `toml:"lines"`
	Template string `toml:"template"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
