package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/catalog"
	"github.com/tessro/vlcmark/internal/core"
	errs "github.com/tessro/vlcmark/internal/errors"
	"github.com/tessro/vlcmark/internal/tui/styles"
)

// Screen draws the annotation session as plain scrolling output.
type Screen struct {
	out   io.Writer
	emoji bool
}

// NewScreen returns a Screen writing to out.
func NewScreen(out io.Writer, emoji bool) *Screen {
	return &Screen{out: out, emoji: emoji}
}

func (s *Screen) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Screen) icon(icon string) string {
	if !s.emoji {
		return ""
	}
	return icon + " "
}

// NowPlaying announces a new item and the available keys.
func (s *Screen) NowPlaying(file string, index, total int) {
	s.printf("\n%s%s %s\n",
		s.icon(styles.StatusIcon(true)),
		styles.Subtitle.Render(fmt.Sprintf("Now playing (%d/%d):", index, total)),
		styles.Title.Render(core.DisplayName(file)))
	s.printf("%s\n", s.keyHelp())
}

func (s *Screen) keyHelp() string {
	keys := []struct{ key, label string }{
		{"c", "components"},
		{"y", "copy-pasted"},
		{"u", "copy-pasted unchanged"},
		{"o", "comment"},
		{"t", "task"},
		{"q", "next file"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, styles.Key.Render(k.key)+" "+styles.Muted.Render(k.label))
	}
	return "  " + strings.Join(parts, "  ")
}

// Paused shows the timestamp the annotation will be attached to.
func (s *Screen) Paused(m annotate.Mark) {
	s.printf("%s%s\n", s.icon(styles.StatusIcon(false)), styles.Paused.Render("Paused at "+m.Timestamp))
}

// Resumed confirms playback is running again.
func (s *Screen) Resumed() {
	s.printf("%s%s\n", s.icon(styles.StatusIcon(true)), styles.Playing.Render("Resumed"))
}

// CategoryMenu draws the category checklist with the current selection.
func (s *Screen) CategoryMenu(categories []catalog.Category, selected catalog.Selection) {
	s.printf("%s\n", styles.Highlight.Render("Components"))
	for i, c := range categories {
		box := "[ ]"
		if selected.Has(c.Label) {
			box = "[" + styles.Swatch("x", c.Color) + "]"
		}
		s.printf("  %s %s %s  %s\n", box, styles.Key.Render(fmt.Sprintf("%d", i+1)), c.Label, styles.Dim.Render(c.Description))
	}
	s.printf("  %s\n", styles.Muted.Render("digits toggle, Enter confirms, Esc cancels"))
}

// ActionMenu asks whether a task starts or ends.
func (s *Screen) ActionMenu() {
	s.printf("%s  %s start  %s end\n",
		styles.Highlight.Render("Task"),
		styles.Key.Render("s"),
		styles.Key.Render("e"))
}

// TaskMenu lists the tasks with their keys.
func (s *Screen) TaskMenu(action annotate.Action, tasks []string) {
	s.printf("%s\n", styles.Highlight.Render(fmt.Sprintf("Which task %ss?", action)))
	for i, t := range tasks {
		s.printf("  %s %s\n", styles.Key.Render(string(catalog.TaskKey(i))), t)
	}
}

// Prompt asks for a line of input.
func (s *Screen) Prompt(question string) {
	s.printf("%s ", styles.Highlight.Render(question+":"))
}

// Logged confirms an annotation was written.
func (s *Screen) Logged(ev annotate.Event) {
	s.printf("%s%s %s\n",
		s.icon(styles.KindIcon(string(ev.Kind()))),
		styles.Playing.Render("Logged "+string(ev.Kind())),
		styles.Muted.Render(ev.Summary()))
}

// Cancelled reports that nothing was written.
func (s *Screen) Cancelled() {
	s.printf("%s\n", styles.Muted.Render("Nothing logged"))
}

// Error reports a failure that did not end the session.
func (s *Screen) Error(err error) {
	s.printf("%s\n", styles.Failure.Render(errs.Format(err)))
}
