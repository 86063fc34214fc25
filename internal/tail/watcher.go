package tail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tessro/vlcmark/internal/annotate"
)

// Event is an annotation read from a followed log.
type Event struct {
	Annotation annotate.Event
	Seen       time.Time
}

// Watcher follows an annotation log and emits each event appended to it.
type Watcher struct {
	path    string
	offset  int64
	partial []byte
	events  chan Event
	done    chan struct{}
	logger  *slog.Logger
	now     func() time.Time
}

// NewWatcher creates a watcher for the log at path. The file does not have to
// exist yet.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		path:   path,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		logger: logger,
		now:    time.Now,
	}
}

// Events returns the channel of annotation events. It is closed when Start returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Backlog returns up to n of the events already in the log and moves the read
// position to its end, so Start only reports new lines.
func (w *Watcher) Backlog(n int) ([]Event, error) {
	f, err := os.Open(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := annotate.DecodeEvents(f)
	for _, err := range result.Errors {
		w.logger.Warn("skipping log line", "path", w.path, "err", err)
	}

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	w.offset = offset

	anns := result.Data
	if n >= 0 && len(anns) > n {
		anns = anns[len(anns)-n:]
	}
	seen := w.now()
	events := make([]Event, 0, len(anns))
	for _, a := range anns {
		events = append(events, Event{Annotation: a, Seen: seen})
	}
	return events, nil
}

// Start watches the log's directory and emits events until ctx is cancelled
// or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.events)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so the log can be created or replaced after we start.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	// Catch anything written between Backlog and the watch being set up.
	if err := w.drain(ctx); err != nil {
		return err
	}

	name := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.reset()
				continue
			}
			if event.Has(fsnotify.Create) {
				w.reset()
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := w.drain(ctx); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
			w.logger.Warn("watch error", "path", w.path, "err", err)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) reset() {
	w.offset = 0
	w.partial = nil
}

// drain reads everything past the current offset and emits complete lines.
func (w *Watcher) drain(ctx context.Context) error {
	f, err := os.Open(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < w.offset {
		w.logger.Info("log truncated, starting over", "path", w.path)
		w.reset()
	}

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	w.offset += int64(len(data))

	buf := append(w.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := buf[:i]
		buf = buf[i+1:]

		ann, ok, err := annotate.DecodeLine(line)
		if err != nil {
			w.logger.Warn("skipping log line", "path", w.path, "err", err)
			continue
		}
		if !ok {
			continue
		}

		select {
		case w.events <- Event{Annotation: ann, Seen: w.now()}:
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		}
	}
	w.partial = append([]byte(nil), buf...)
	return nil
}
