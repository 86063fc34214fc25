package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/vlcmark/internal/config"
	errs "github.com/tessro/vlcmark/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing vlcmark configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the configuration in effect, after defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  player.binary               Player executable (default: vlc)
  player.interface            Control interface passed to --extraintf (default: rc)
  player.extra_args           Extra player arguments, comma separated
  player.startup_delay_ms     Wait before reading the player banner
  player.reply_timeout_ms     Wait for a get_time reply, 0 waits forever
  player.shutdown_timeout_ms  Wait for the player to exit after quit
  ui.mode                     keys or form
  ui.theme                    auto, dark or light
  ui.emoji                    Show emoji (true/false)
  tail.lines                  Backlog lines shown by tail
  tail.template               Go template for tail output
  log.level                   debug, info, warn or error
  log.file                    Diagnostic log file

Examples:
  vlcmark config set player.binary /Applications/VLC.app/Contents/MacOS/VLC
  vlcmark config set ui.mode form`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	_, err := os.Stat(path)
	exists := err == nil

	if JSONOutput() {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"path":   path,
			"exists": exists,
		})
	}

	if exists {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (not created yet)\n", path)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Fprintf(out, "Created config file: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Point player.binary at your VLC executable if it is not on PATH")
		fmt.Fprintln(out, "  2. Run 'vlcmark annotations.jsonl video.mp4' to start annotating")
	}

	return nil
}

// getConfigPath returns the file config commands operate on: --config, then
// an existing file from the search path, then the default location.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}
	return config.DefaultPath()
}

func writeConfigFile(path string, v any) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# vlcmark configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// configValue converts a command-line value to the TOML type of key.
func configValue(key, value string) (any, error) {
	switch key {
	case "player.startup_delay_ms", "player.reply_timeout_ms", "player.shutdown_timeout_ms", "tail.lines":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case "ui.emoji":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	case "player.extra_args":
		var args []string
		for _, a := range strings.Split(value, ",") {
			if a = strings.TrimSpace(a); a != "" {
				args = append(args, a)
			}
		}
		return args, nil
	case "player.binary", "player.interface", "ui.mode", "ui.theme", "tail.template", "log.level", "log.file":
		return value, nil
	default:
		return nil, fmt.Errorf("unknown key %q. Run 'vlcmark config set --help' for the list", key)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := configValue(key, value)
	if err != nil {
		return err
	}

	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return errs.WithSuggestion(
			fmt.Errorf("%w at %s", errs.ErrConfigNotFound, configPath),
			"Run 'vlcmark config init' first")
	}

	// Read the current config file as raw TOML
	var rawConfig map[string]any
	if _, err := toml.DecodeFile(configPath, &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if rawConfig == nil {
		rawConfig = make(map[string]any)
	}

	section, field, _ := strings.Cut(key, ".")

	// Get or create the section
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	// Refuse values the loader would reject.
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	check := config.Default()
	if _, err := toml.Decode(buf.String(), check); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := check.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Fprintf(out, "Set %s = %s\n", key, value)
	}

	return nil
}
