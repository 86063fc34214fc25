package annotate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tessro/vlcmark/internal/core"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// collector gathers the payload for one flow. It returns ErrCancelled when
// nothing should be logged.
type collector func(m Mark) (Event, error)

// Loop drives the keyboard session for one media item at a time.
//
// Every flow runs pause, get_time, dialog, append, play in that order, and
// the next key is not read until the flow has finished.
type Loop struct {
	player  core.Player
	in      Input
	dialogs Dialogs
	log     EventLog
	display Display
	logger  *slog.Logger

	state core.PlaybackState
	flows map[Key]collector
}

// NewLoop wires a loop to its collaborators.
func NewLoop(player core.Player, in Input, dialogs Dialogs, log EventLog, display Display, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loop{
		player:  player,
		in:      in,
		dialogs: dialogs,
		log:     log,
		display: display,
		logger:  logger,
		state:   core.StateTerminated,
	}
	l.flows = map[Key]collector{
		'c': l.collectComponents,
		'y': l.collectCopyPasted,
		'u': l.collectCopyPastedUnchanged,
		'o': l.collectComment,
		't': l.collectTask,
	}
	return l
}

// State reports where the loop is in its per-item state machine.
func (l *Loop) State() core.PlaybackState {
	return l.state
}

// Run handles keys for file until the operator quits or input ends. The
// caller must already have issued add and play for file.
//
// Run returns nil when the item ends normally, including when input closes.
// Player failures and interrupts are returned.
func (l *Loop) Run(ctx context.Context, file string) error {
	l.state = core.StatePlaying
	defer func() { l.state = core.StateTerminated }()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		key, err := readKey(l.in)
		if err != nil {
			if errors.Is(err, errs.ErrInputClosed) {
				l.logger.Debug("input closed", "file", file)
				return nil
			}
			return err
		}

		if key == 'q' {
			l.logger.Debug("quit key", "file", file)
			return nil
		}

		collect, ok := l.flows[key]
		if !ok {
			continue
		}

		done, err := l.runFlow(ctx, file, key, collect)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// runFlow executes one pause-triggering flow. done is true when input closed
// during the dialog and the item should end without resuming.
func (l *Loop) runFlow(ctx context.Context, file string, key Key, collect collector) (done bool, err error) {
	logger := l.logger.With("file", file, "flow", string(rune(key)))

	if err := l.player.Pause(ctx); err != nil {
		return false, fmt.Errorf("pause: %w", err)
	}
	l.state = core.StatePaused

	ts, err := l.player.GetTime(ctx)
	if err != nil {
		return false, fmt.Errorf("get_time: %w", err)
	}
	mark := Mark{Timestamp: ts, FileName: file}
	l.display.Paused(mark)
	logger.Debug("paused", "timestamp", ts)

	ev, err := collect(mark)
	switch {
	case err == nil:
		if err := l.log.Append(ev); err != nil {
			logger.Error("append failed", "err", err)
			if rerr := l.resume(ctx); rerr != nil {
				return false, errors.Join(err, rerr)
			}
			return false, err
		}
		logger.Info("logged", "kind", ev.Kind(), "timestamp", ev.Timestamp)
		l.display.Logged(ev)
	case errors.Is(err, errs.ErrInputClosed):
		logger.Debug("input closed during dialog")
		return true, nil
	case errors.Is(err, errs.ErrInterrupted):
		return false, err
	case errors.Is(err, ErrCancelled):
		logger.Debug("cancelled")
		l.display.Cancelled()
	default:
		logger.Warn("dialog failed", "err", err)
		l.display.Error(err)
	}

	return false, l.resume(ctx)
}

func (l *Loop) resume(ctx context.Context) error {
	if err := l.player.Play(ctx); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	l.state = core.StatePlaying
	l.display.Resumed()
	return nil
}

func (l *Loop) collectComponents(m Mark) (Event, error) {
	sel, err := l.dialogs.Components()
	if err != nil {
		return Event{}, err
	}
	if sel.Len() == 0 {
		return Event{}, ErrCancelled
	}
	return ComponentsEvent(m, sel), nil
}

func (l *Loop) collectCopyPasted(m Mark) (Event, error) {
	ok, err := l.dialogs.Confirm("Was the prompt copy-pasted?")
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, ErrCancelled
	}
	return CopyPastedEvent(m), nil
}

func (l *Loop) collectCopyPastedUnchanged(m Mark) (Event, error) {
	ok, err := l.dialogs.Confirm("Was the prompt copy-pasted and submitted unchanged?")
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, ErrCancelled
	}
	return CopyPastedUnchangedEvent(m), nil
}

func (l *Loop) collectComment(m Mark) (Event, error) {
	text, err := l.dialogs.Comment()
	if err != nil {
		return Event{}, err
	}
	return CommentEvent(m, text), nil
}

func (l *Loop) collectTask(m Mark) (Event, error) {
	choice, err := l.dialogs.Task()
	if err != nil {
		return Event{}, err
	}
	return TaskEvent(m, choice.Action, choice.Task), nil
}
