package annotate

import (
	"errors"
	"strings"

	"github.com/tessro/vlcmark/internal/catalog"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// ErrCancelled is returned by a dialog the operator backed out of.
var ErrCancelled = errors.New("cancelled")

// TaskChoice is the answer to the task dialog.
type TaskChoice struct {
	Action Action
	Task   string
}

// Dialogs collects the payload of one annotation. Every method returns
// ErrCancelled when the operator backs out and errors.ErrInputClosed when
// input ends.
type Dialogs interface {
	Components() (catalog.Selection, error)
	Confirm(question string) (bool, error)
	Comment() (string, error)
	Task() (TaskChoice, error)
}

// KeyDialogs implements Dialogs with single-key menus.
type KeyDialogs struct {
	in      Input
	display Display
}

// NewKeyDialogs returns dialogs reading from in and drawing on display.
func NewKeyDialogs(in Input, display Display) *KeyDialogs {
	return &KeyDialogs{in: in, display: display}
}

// Components shows the category menu. Digit keys toggle a category, Enter
// accepts the selection and Esc or q abandons it.
func (d *KeyDialogs) Components() (catalog.Selection, error) {
	cats := catalog.Categories()
	sel := catalog.NewSelection()

	d.display.CategoryMenu(cats, sel)
	for {
		key, err := d.readKey()
		if err != nil {
			return nil, err
		}

		switch key {
		case KeyEnter:
			return sel, nil
		case KeyEsc, 'q':
			return nil, ErrCancelled
		}

		if c, ok := catalog.CategoryByKey(rune(key)); ok {
			sel.Toggle(c.Label)
			d.display.CategoryMenu(cats, sel)
		}
	}
}

// Confirm asks a yes/no question. Only "y" or "Y" counts as yes.
func (d *KeyDialogs) Confirm(question string) (bool, error) {
	d.display.Prompt(question + " [y/N]")
	line, err := d.in.ReadLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// Comment reads one line of free text. A blank line cancels.
func (d *KeyDialogs) Comment() (string, error) {
	d.display.Prompt("Comment")
	line, err := d.in.ReadLine()
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return "", ErrCancelled
	}
	return text, nil
}

// Task asks for start or end, then for one of the ten task labels.
func (d *KeyDialogs) Task() (TaskChoice, error) {
	var choice TaskChoice

	d.display.ActionMenu()
	for choice.Action == "" {
		key, err := d.readKey()
		if err != nil {
			return TaskChoice{}, err
		}
		switch key {
		case 's', '1':
			choice.Action = ActionStart
		case 'e', '2':
			choice.Action = ActionEnd
		case KeyEsc, 'q':
			return TaskChoice{}, ErrCancelled
		}
	}

	d.display.TaskMenu(choice.Action, catalog.Tasks())
	for {
		key, err := d.readKey()
		if err != nil {
			return TaskChoice{}, err
		}
		if key == KeyEsc || key == 'q' {
			return TaskChoice{}, ErrCancelled
		}
		if task, ok := catalog.TaskByKey(rune(key)); ok {
			choice.Task = task
			return choice, nil
		}
	}
}

func (d *KeyDialogs) readKey() (Key, error) {
	return readKey(d.in)
}

// readKey reads a key and turns Ctrl-C and Ctrl-D into errors.
func readKey(in Input) (Key, error) {
	key, err := in.ReadKey()
	if err != nil {
		return KeyNone, err
	}
	switch key {
	case KeyInterrupt:
		return KeyNone, errs.ErrInterrupted
	case KeyEOF:
		return KeyNone, errs.ErrInputClosed
	}
	return key, nil
}
