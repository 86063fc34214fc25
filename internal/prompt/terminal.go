// Package prompt connects the annotation loop to a real terminal.
package prompt

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tessro/vlcmark/internal/annotate"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// IsTerminal returns true if f is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Terminal reads keys and lines from the operator.
//
// On a tty each ReadKey switches the terminal to raw mode for exactly one
// keypress and restores it before returning, so lines are read with normal
// echo and editing. On other input every rune counts as a keypress.
type Terminal struct {
	in    *bufio.Reader
	fd    int
	isTTY bool
}

// NewTerminal returns a Terminal reading from f.
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{
		in:    bufio.NewReader(f),
		fd:    int(f.Fd()),
		isTTY: IsTerminal(f),
	}
}

// NewReader returns a Terminal over plain input such as a pipe.
func NewReader(r io.Reader) *Terminal {
	return &Terminal{in: bufio.NewReader(r)}
}

// ReadKey blocks for one keypress.
func (t *Terminal) ReadKey() (annotate.Key, error) {
	if t.isTTY {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return annotate.KeyNone, err
		}
		defer func() { _ = term.Restore(t.fd, state) }()
	}

	r, _, err := t.in.ReadRune()
	if errors.Is(err, io.EOF) {
		return annotate.KeyNone, errs.ErrInputClosed
	}
	if err != nil {
		return annotate.KeyNone, err
	}
	return annotate.DecodeKey(r), nil
}

// ReadLine blocks for one line and returns it without its terminator. A final
// line without a newline is returned before ErrInputClosed.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", errs.ErrInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}
