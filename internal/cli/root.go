package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/vlcmark/internal/config"
	errs "github.com/tessro/vlcmark/internal/errors"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vlcmark <output-log> <video>...",
	Short: "Annotate screen recordings while they play in VLC",
	Long: `vlcmark plays each video in VLC and lets you mark moments with single
keys. Every annotation is appended to the output log as one JSON line.

Keys while a video plays:
  c    components seen on screen
  y    prompt was copy-pasted
  u    prompt was copy-pasted and submitted unchanged
  o    free-text comment
  t    task start or end
  q    move on to the next video`,
	Args: requireLogAndVideos,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE:          runAnnotate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.vlcmarkrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// requireLogAndVideos prints usage when the output log or every video is missing.
func requireLogAndVideos(cmd *cobra.Command, args []string) error {
	if len(args) >= 2 {
		return nil
	}
	_ = cmd.Usage()
	return fmt.Errorf("requires an output log and at least one video, got %d argument(s)", len(args))
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errs.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
