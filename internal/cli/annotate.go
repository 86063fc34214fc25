package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/vlcmark/internal/annotate"
	errs "github.com/tessro/vlcmark/internal/errors"
	"github.com/tessro/vlcmark/internal/logging"
	"github.com/tessro/vlcmark/internal/prompt"
	"github.com/tessro/vlcmark/internal/vlc"
)

var (
	annotatePlayer       string
	annotateReplyTimeout time.Duration
	annotateUI           string
	annotateAccessible   bool
)

// exit is replaced in tests.
var exit = os.Exit

func init() {
	rootCmd.Flags().StringVar(&annotatePlayer, "player", "", "player binary (overrides player.binary)")
	rootCmd.Flags().DurationVar(&annotateReplyTimeout, "reply-timeout", 0, "how long to wait for a player reply, 0 waits forever (overrides player.reply_timeout_ms)")
	rootCmd.Flags().StringVar(&annotateUI, "ui", "", "dialog style: keys or form (overrides ui.mode)")
	rootCmd.Flags().BoolVar(&annotateAccessible, "accessible", false, "use plain-text prompts in form mode")
}

// applyAnnotateFlags copies explicitly set flags over the loaded config.
func applyAnnotateFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("player") {
		cfg.Player.Binary = annotatePlayer
	}
	if flags.Changed("reply-timeout") {
		cfg.Player.ReplyTimeoutMs = int(annotateReplyTimeout / time.Millisecond)
	}
	if flags.Changed("ui") {
		cfg.UI.Mode = annotateUI
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return nil
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	logPath, items := args[0], args[1:]

	if err := applyAnnotateFlags(cmd); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, Verbose(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	logger, runID := logging.WithRun(logger)
	logger.Info("run started", "log", logPath, "items", len(items), "player", cfg.Player.Binary, "ui", cfg.UI.Mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := vlc.Start(ctx, cfg.Player,
		vlc.WithReplyTimeout(cfg.Player.ReplyTimeout()),
		vlc.WithShutdownTimeout(cfg.Player.ShutdownTimeout()),
		vlc.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("player shutdown", "err", err)
		}
	}()

	// Keyboard reads cannot be interrupted, so a signal quits the player and
	// exits from here.
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("signal received, quitting player")
			_ = session.Quit(context.Background())
			_ = session.Close()
			exit(130)
		case <-finished:
		}
	}()

	out := cmd.OutOrStdout()
	screen := prompt.NewScreen(out, cfg.UI.Emoji)
	input := prompt.NewTerminal(os.Stdin)

	var dialogs annotate.Dialogs = annotate.NewKeyDialogs(input, screen)
	if cfg.UI.Mode == "form" {
		dialogs = prompt.NewFormDialogs(cfg.UI.Theme, annotateAccessible)
	}

	eventLog := annotate.NewFileLog(logPath)
	loop := annotate.NewLoop(session, input, dialogs, eventLog, screen, logger)
	runner := annotate.NewRunner(session, loop, screen, logger)

	err = runner.Run(ctx, items)
	switch {
	case err == nil:
		logger.Info("run finished", "run", runID)
		fmt.Fprintf(out, "\nAnnotations saved to %s\n", eventLog.Path())
		return nil
	case errors.Is(err, errs.ErrInterrupted):
		logger.Info("interrupted by operator")
		fmt.Fprintf(out, "\nInterrupted. Annotations so far are in %s\n", eventLog.Path())
		return nil
	default:
		logger.Error("run failed", "err", err)
		return err
	}
}
