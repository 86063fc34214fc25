package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/tui/styles"
)

// EventList renders annotations one per line
type EventList struct {
	ShowFile bool
}

// NewEventList creates a new EventList component
func NewEventList() *EventList {
	return &EventList{ShowFile: true}
}

// Render renders the list as plain lines for a viewport
func (l *EventList) Render(events []annotate.Event, width int) string {
	if len(events) == 0 {
		return styles.Muted.Render("No annotations")
	}

	// Fixed overhead: icon (2) + gaps (4) + timestamp column (8)
	const overhead = 14

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		ts := fmt.Sprintf("%-8s", truncate(ev.Timestamp, 8))

		available := width - overhead
		var text string
		if l.ShowFile {
			file := truncate(ev.FileName, available/3)
			text = styles.Subtitle.Render(file) + "  " + truncate(ev.Summary(), available-len(file)-2)
		} else {
			text = truncate(ev.Summary(), available)
		}

		line := fmt.Sprintf("%s %s  %s",
			styles.KindIcon(string(ev.Kind())),
			styles.Dim.Render(ts),
			text)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
