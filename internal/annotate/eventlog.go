package annotate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/tessro/vlcmark/internal/errors"
)

// EventLog receives completed annotations.
type EventLog interface {
	Append(ev Event) error
}

// FileLog appends events to a JSON-lines file. The file is opened and closed
// for every event, and each event is a single write of one line, so a crash
// never leaves earlier entries damaged.
type FileLog struct {
	path string
}

// NewFileLog returns a FileLog writing to path. The file is created on the
// first Append.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Path returns the log file path.
func (l *FileLog) Path() string {
	return l.path
}

// Append writes ev as one JSON line.
func (l *FileLog) Append(ev Event) (err error) {
	if verr := ev.Validate(); verr != nil {
		return fmt.Errorf("%w: %v", errs.ErrLogWrite, verr)
	}

	line, err := encodeLine(ev)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrLogWrite, err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrLogWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", errs.ErrLogWrite, cerr)
		}
	}()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrLogWrite, err)
	}
	return nil
}

// encodeLine marshals ev with a trailing newline and without HTML escaping,
// so comments keep their <, > and & characters.
func encodeLine(ev Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeEvents reads a JSON-lines annotation log. Blank lines are skipped;
// lines that do not parse into a valid event are reported and skipped.
func DecodeEvents(r io.Reader) *errs.PartialResult[[]Event] {
	result := &errs.PartialResult[[]Event]{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ev, ok, err := DecodeLine(scanner.Bytes())
		if err != nil {
			result.AddError(fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if ok {
			result.Data = append(result.Data, ev)
		}
	}
	result.AddError(scanner.Err())

	return result
}

// DecodeLine parses one log line. ok is false for blank lines.
func DecodeLine(line []byte) (ev Event, ok bool, err error) {
	if len(bytes.TrimSpace(line)) == 0 {
		return Event{}, false, nil
	}
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, false, err
	}
	if err := ev.Validate(); err != nil {
		return Event{}, false, err
	}
	return ev, true, nil
}
