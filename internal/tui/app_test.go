package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/tail"
)

var sample = []annotate.Event{
	{Timestamp: "1", FileName: "a.mp4", Comment: "first"},
	{Timestamp: "2", FileName: "a.mp4", Components: []string{"tool output"}},
	{Timestamp: "3", FileName: "b.mp4", Action: annotate.ActionStart, Task: "fix-bug"},
	{Timestamp: "4", FileName: "b.mp4", Comment: "second"},
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelFilters(t *testing.T) {
	m := NewModel("log.jsonl", sample, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	if got := len(m.Visible()); got != 4 {
		t.Fatalf("Visible() = %d events, want 4", got)
	}

	m = update(t, m, key("f"))
	if got := len(m.Visible()); got != 2 || m.fileFilter() != "a.mp4" {
		t.Errorf("after f: %d events for %q, want 2 for a.mp4", got, m.fileFilter())
	}

	m = update(t, m, key("f"))
	m = update(t, m, key("f"))
	if m.fileFilter() != "" {
		t.Errorf("file filter did not wrap to all, got %q", m.fileFilter())
	}

	// components is the first kind after "all"
	m = update(t, m, key("t"))
	vis := m.Visible()
	if len(vis) != 1 || vis[0].Kind() != annotate.KindComponents {
		t.Errorf("after t: %+v, want the components event", vis)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel("/tmp/log.jsonl", sample, nil)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before size = %q", got)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	for _, want := range []string{"log.jsonl", "all files", "first", "Summary"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = update(t, m, key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not shown")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("esc did not close help")
	}
}

func TestModelFollow(t *testing.T) {
	ch := make(chan tail.Event, 1)
	m := NewModel("log.jsonl", nil, ch)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	ch <- tail.Event{Annotation: sample[0], Seen: time.Now()}
	msg := m.waitForEvent()()
	m = update(t, m, msg)

	if len(m.events) != 1 || m.files[0] != "a.mp4" {
		t.Errorf("events = %+v, files = %v", m.events, m.files)
	}

	close(ch)
	m = update(t, m, m.waitForEvent()())
	if m.follow != nil {
		t.Error("follow channel kept after close")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel("log.jsonl", sample, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
