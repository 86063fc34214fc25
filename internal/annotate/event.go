package annotate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/vlcmark/internal/catalog"
)

// Action marks the start or end of a task.
type Action string

const (
	ActionStart Action = "start"
	ActionEnd   Action = "end"
)

// Kind names the payload an Event carries.
type Kind string

const (
	KindComponents          Kind = "components"
	KindCopyPasted          Kind = "is_copy_pasted"
	KindCopyPastedUnchanged Kind = "is_copy_pasted_and_unchanged"
	KindTask                Kind = "task"
	KindComment             Kind = "comment"
	KindUnknown             Kind = "unknown"
)

// Mark is the playback position an annotation is attached to.
type Mark struct {
	Timestamp string
	FileName  string
}

// Event is one line of the annotation log. Exactly one payload group is set.
type Event struct {
	Timestamp string `json:"timestamp"`
	FileName  string `json:"file_name"`

	Components               []string `json:"components,omitempty"`
	IsCopyPasted             bool     `json:"is_copy_pasted,omitempty"`
	IsCopyPastedAndUnchanged bool     `json:"is_copy_pasted_and_unchanged,omitempty"`
	Action                   Action   `json:"action,omitempty"`
	Task                     string   `json:"task,omitempty"`
	Comment                  string   `json:"comment,omitempty"`
}

// ComponentsEvent records the categories seen at m.
func ComponentsEvent(m Mark, sel catalog.Selection) Event {
	return Event{Timestamp: m.Timestamp, FileName: m.FileName, Components: sel.Sorted()}
}

// CopyPastedEvent records that the prompt at m was pasted in.
func CopyPastedEvent(m Mark) Event {
	return Event{Timestamp: m.Timestamp, FileName: m.FileName, IsCopyPasted: true}
}

// CopyPastedUnchangedEvent records that the prompt at m was pasted and then
// submitted without edits.
func CopyPastedUnchangedEvent(m Mark) Event {
	return Event{Timestamp: m.Timestamp, FileName: m.FileName, IsCopyPastedAndUnchanged: true}
}

// TaskEvent records a task boundary at m.
func TaskEvent(m Mark, action Action, task string) Event {
	return Event{Timestamp: m.Timestamp, FileName: m.FileName, Action: action, Task: task}
}

// CommentEvent records free text at m.
func CommentEvent(m Mark, text string) Event {
	return Event{Timestamp: m.Timestamp, FileName: m.FileName, Comment: text}
}

// Kind reports which payload the event carries.
func (e Event) Kind() Kind {
	switch {
	case len(e.Components) > 0:
		return KindComponents
	case e.IsCopyPasted:
		return KindCopyPasted
	case e.IsCopyPastedAndUnchanged:
		return KindCopyPastedUnchanged
	case e.Action != "" || e.Task != "":
		return KindTask
	case e.Comment != "":
		return KindComment
	default:
		return KindUnknown
	}
}

// Validate checks that the event has a position and exactly one payload.
func (e Event) Validate() error {
	if e.Timestamp == "" {
		return errors.New("missing timestamp")
	}
	if e.FileName == "" {
		return errors.New("missing file_name")
	}

	payloads := 0
	if len(e.Components) > 0 {
		payloads++
	}
	if e.IsCopyPasted {
		payloads++
	}
	if e.IsCopyPastedAndUnchanged {
		payloads++
	}
	if e.Action != "" || e.Task != "" {
		payloads++
		if e.Action != ActionStart && e.Action != ActionEnd {
			return fmt.Errorf("invalid action %q", e.Action)
		}
		if e.Task == "" {
			return errors.New("task event without task")
		}
	}
	if e.Comment != "" {
		payloads++
	}

	if payloads != 1 {
		return fmt.Errorf("event has %d payloads, want 1", payloads)
	}
	return nil
}

// Summary renders the payload for people.
func (e Event) Summary() string {
	switch e.Kind() {
	case KindComponents:
		return strings.Join(e.Components, ", ")
	case KindCopyPasted:
		return "copy-pasted"
	case KindCopyPastedUnchanged:
		return "copy-pasted, unchanged"
	case KindTask:
		return fmt.Sprintf("%s %s", e.Action, e.Task)
	case KindComment:
		return e.Comment
	default:
		return ""
	}
}
