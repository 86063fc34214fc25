package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/tui/styles"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Seen.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, styles.KindIcon(string(e.Annotation.Kind())))
	}

	parts = append(parts, describe(e.Annotation))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	a := e.Annotation
	data := templateData{
		Kind:       string(a.Kind()),
		Emoji:      styles.KindIcon(string(a.Kind())),
		Seen:       e.Seen,
		Time:       e.Seen.Format("15:04:05"),
		Timestamp:  a.Timestamp,
		File:       a.FileName,
		Summary:    a.Summary(),
		Components: a.Components,
		Action:     string(a.Action),
		Task:       a.Task,
		Comment:    a.Comment,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Kind       string
	Emoji      string
	Seen       time.Time
	Time       string
	Timestamp  string
	File       string
	Summary    string
	Components []string
	Action     string
	Task       string
	Comment    string
}

// describe returns a human-readable description of an annotation.
func describe(a annotate.Event) string {
	where := fmt.Sprintf("%s @ %s", a.FileName, a.Timestamp)

	switch a.Kind() {
	case annotate.KindComponents:
		return fmt.Sprintf("%s  components: %s", where, a.Summary())
	case annotate.KindCopyPasted:
		return fmt.Sprintf("%s  copy-pasted", where)
	case annotate.KindCopyPastedUnchanged:
		return fmt.Sprintf("%s  copy-pasted, unchanged", where)
	case annotate.KindTask:
		return fmt.Sprintf("%s  task %s: %s", where, a.Action, a.Task)
	case annotate.KindComment:
		return fmt.Sprintf("%s  %q", where, a.Comment)
	default:
		return fmt.Sprintf("%s  unknown annotation", where)
	}
}
