package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/logging"
	"github.com/tessro/vlcmark/internal/prompt"
	"github.com/tessro/vlcmark/internal/tail"
	"github.com/tessro/vlcmark/internal/tui"
)

var viewFollow bool

var viewCmd = &cobra.Command{
	Use:     "view <log>",
	Aliases: []string{"ui"},
	Short:   "Browse an annotation log",
	Long: `Open an annotation log in an interactive viewer.

When stdout is not a terminal the log is printed as a table instead
(or as JSON with --json).

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  f            Cycle file filter
  t            Cycle kind filter
  j/k          Scroll
  Tab          Switch panel`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVarP(&viewFollow, "follow", "f", false, "keep reading as annotations are appended")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	result := annotate.DecodeEvents(f)
	_ = f.Close()

	if result.HasErrors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", result.ErrorSummary())
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		events := result.Data
		if events == nil {
			events = []annotate.Event{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(events)
	}

	if !prompt.IsTerminal(os.Stdout) {
		printEventTable(cmd, result.Data)
		return nil
	}

	var follow <-chan tail.Event
	if viewFollow {
		logger, closer, err := logging.New(cfg.Log, false, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		watcher := tail.NewWatcher(path, logger)
		if _, err := watcher.Backlog(0); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("follow stopped", "err", err)
			}
		}()
		follow = watcher.Events()
	}

	return tui.Run(path, result.Data, follow)
}

func printEventTable(cmd *cobra.Command, events []annotate.Event) {
	t := NewTableWriter(cmd.OutOrStdout(), "TIME", "FILE", "KIND", "DETAIL")
	for _, ev := range events {
		t.Row(ev.Timestamp, ev.FileName, string(ev.Kind()), TruncateString(ev.Summary(), 60))
	}
	t.Flush()
}
