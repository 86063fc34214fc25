package components

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/catalog"
	"github.com/tessro/vlcmark/internal/core"
	"github.com/tessro/vlcmark/internal/tui/styles"
)

// Summary displays annotation counts for the visible events
type Summary struct{}

// NewSummary creates a new Summary component
func NewSummary() *Summary {
	return &Summary{}
}

// Stats holds the counts shown in the summary panel.
type Stats struct {
	Total      int
	ByKind     map[annotate.Kind]int
	ByCategory map[string]int
	OpenTasks  []string
}

// Collect computes Stats for events. A task is open when its last event is a start.
func Collect(events []annotate.Event) Stats {
	s := Stats{
		Total:      len(events),
		ByKind:     make(map[annotate.Kind]int),
		ByCategory: make(map[string]int),
	}

	type taskKey struct{ file, task string }
	open := make(map[taskKey]bool)
	for _, ev := range events {
		s.ByKind[ev.Kind()]++
		for _, c := range ev.Components {
			s.ByCategory[c]++
		}
		if ev.Kind() == annotate.KindTask {
			open[taskKey{ev.FileName, ev.Task}] = ev.Action == annotate.ActionStart
		}
	}
	for k, isOpen := range open {
		if isOpen {
			s.OpenTasks = append(s.OpenTasks, core.DisplayName(k.file)+": "+k.task)
		}
	}
	sort.Strings(s.OpenTasks)
	return s
}

// Render renders the summary panel
func (s *Summary) Render(events []annotate.Event, width, height int, focused bool) string {
	title := styles.PanelTitle("Summary", focused)

	var content string
	if len(events) == 0 {
		content = styles.Muted.Render("Nothing logged yet")
	} else {
		content = s.renderStats(Collect(events), width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (s *Summary) renderStats(stats Stats, width int) string {
	row := func(label string, n int) string {
		return fmt.Sprintf("%s %d", styles.Label.Render(fmt.Sprintf("%-*s", min(width-4, 24), truncate(label, 24))), n)
	}

	lines := []string{row("annotations", stats.Total)}

	kinds := []annotate.Kind{
		annotate.KindComponents,
		annotate.KindCopyPasted,
		annotate.KindCopyPastedUnchanged,
		annotate.KindTask,
		annotate.KindComment,
	}
	for _, k := range kinds {
		if n := stats.ByKind[k]; n > 0 {
			lines = append(lines, styles.KindIcon(string(k))+" "+row(string(k), n))
		}
	}

	if len(stats.ByCategory) > 0 {
		lines = append(lines, "", styles.Subtitle.Render("Categories"))
		for _, c := range catalog.Categories() {
			if n := stats.ByCategory[c.Label]; n > 0 {
				lines = append(lines, styles.Swatch("■", c.Color)+" "+row(c.Label, n))
			}
		}
	}

	if len(stats.OpenTasks) > 0 {
		lines = append(lines, "", styles.Subtitle.Render("Open tasks"))
		for _, t := range stats.OpenTasks {
			lines = append(lines, styles.StatusIcon(true)+" "+truncate(t, width-2))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
