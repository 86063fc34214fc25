package annotate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/tessro/vlcmark/internal/errors"
)

func newFileHarness(t *testing.T, keySeq string, lines ...string) (*harness, *Runner, string) {
	t.Helper()
	h := newHarness(keySeq, lines...)
	path := filepath.Join(t.TempDir(), "annotations.jsonl")
	h.loop.log = NewFileLog(path)
	return h, NewRunner(h.player, h.loop, h.display, nil), path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestRunnerCommentThenNextItem(t *testing.T) {
	h, r, path := newFileHarness(t, "oq", "looks good")
	h.player.times = []string{"T"}

	if err := r.Run(context.Background(), []string{"a.mp4", "b.mp4"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantSteps := "add a.mp4,play,pause,get_time,play,add b.mp4,play,quit"
	if got := h.steps(); got != wantSteps {
		t.Errorf("steps = %q, want %q", got, wantSteps)
	}

	want := `{"timestamp":"T","file_name":"a.mp4","comment":"looks good"}` + "\n"
	if got := readLog(t, path); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestRunnerComponentsSorted(t *testing.T) {
	_, r, path := newFileHarness(t, "c31\nq")

	if err := r.Run(context.Background(), []string{"a.mp4"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := readLog(t, path)
	if !strings.Contains(got, `"components":["natural language","tool output"]`) {
		t.Errorf("log = %q, want sorted components", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("log has %d lines, want 1", strings.Count(got, "\n"))
	}
}

func TestRunnerQuitsOnceAfterFailure(t *testing.T) {
	h, r, path := newFileHarness(t, "oq", "never")
	h.player.timeErr = errs.ErrSessionClosed

	err := r.Run(context.Background(), []string{"a.mp4", "b.mp4"})
	if !errors.Is(err, errs.ErrSessionClosed) {
		t.Fatalf("Run() error = %v, want ErrSessionClosed", err)
	}
	if !strings.Contains(err.Error(), "a.mp4") {
		t.Errorf("error %q does not name the item", err)
	}

	wantSteps := "add a.mp4,play,pause,get_time,quit"
	if got := h.steps(); got != wantSteps {
		t.Errorf("steps = %q, want %q", got, wantSteps)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("log file exists after failed run: %v", err)
	}
}

func TestRunnerCancelledStillQuits(t *testing.T) {
	h, r, _ := newFileHarness(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx, []string{"a.mp4"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if got := h.steps(); got != "quit" {
		t.Errorf("steps = %q, want quit only", got)
	}
}
