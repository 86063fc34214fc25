package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tessro/vlcmark/internal/core"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// Runner plays each media item in order and hands it to the loop.
type Runner struct {
	player  core.Player
	loop    *Loop
	display Display
	logger  *slog.Logger
}

// NewRunner returns a Runner driving player through loop.
func NewRunner(player core.Player, loop *Loop, display Display, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{player: player, loop: loop, display: display, logger: logger}
}

// Run annotates items one after another. quit is sent once, after the last
// item or after the first failure, even if ctx has been cancelled.
func (r *Runner) Run(ctx context.Context, items []string) error {
	playlist := core.NewPlaylist(items)
	if playlist.IsEmpty() {
		r.logger.Warn("nothing to annotate")
	}

	runErr := r.runItems(ctx, playlist)
	if runErr != nil {
		if errs.IsProtocol(runErr) {
			r.logger.Error("player session lost", "err", runErr)
		}
		if rest := playlist.Upcoming(); len(rest) > 0 {
			r.logger.Warn("items not annotated", "count", len(rest), "next", rest[0])
		}
	}

	if err := r.player.Quit(context.WithoutCancel(ctx)); err != nil {
		r.logger.Warn("quit failed", "err", err)
		if runErr == nil {
			runErr = fmt.Errorf("quit: %w", err)
		}
	}
	return runErr
}

func (r *Runner) runItems(ctx context.Context, playlist *core.Playlist) error {
	for {
		item, ok := playlist.Next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		logger := r.logger.With("file", item, "index", playlist.CurrentIndex)
		r.display.NowPlaying(item, playlist.CurrentIndex+1, playlist.Len())
		logger.Info("item started")

		if err := r.player.Add(ctx, item); err != nil {
			return fmt.Errorf("add %s: %w", item, err)
		}
		if err := r.player.Play(ctx); err != nil {
			return fmt.Errorf("play %s: %w", item, err)
		}

		if err := r.loop.Run(ctx, item); err != nil {
			return fmt.Errorf("annotate %s: %w", core.DisplayName(item), err)
		}
		logger.Info("item finished")
	}
}
