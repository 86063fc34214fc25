package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tessro/vlcmark/internal/logging"
	"github.com/tessro/vlcmark/internal/tail"
)

var (
	tailLines     int
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
)

var tailCmd = &cobra.Command{
	Use:   "tail <log>",
	Short: "Follow an annotation log in real-time",
	Long: `Print the last annotations in a log, then print new ones as they are
appended. Useful in a second terminal while annotating.

Template fields: .Kind .Emoji .Time .Timestamp .File .Summary .Components
.Action .Task .Comment`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", -1, "number of existing annotations to show (default from tail.lines)")
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show the time each line was seen")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template (default from tail.template)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	path := args[0]

	lines := tailLines
	if lines < 0 {
		lines = cfg.Tail.Lines
	}
	format := tailFormat
	if format == "" {
		format = cfg.Tail.Template
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(cfg.UI.Emoji && !tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(format),
	)

	logger, closer, err := logging.New(cfg.Log, Verbose(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := tail.NewWatcher(path, logger)
	backlog, err := watcher.Backlog(lines)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	out := cmd.OutOrStdout()
	emit := func(e tail.Event) {
		if JSONOutput() {
			_ = json.NewEncoder(out).Encode(e.Annotation)
			return
		}
		fmt.Fprintln(out, formatter.Format(e))
	}
	for _, e := range backlog {
		emit(e)
	}

	// Start watching in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	// Print events as they arrive
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return waitWatcher(errCh)
			}
			emit(event)

		case err := <-errCh:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func waitWatcher(errCh <-chan error) error {
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
