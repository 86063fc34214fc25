package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/catalog"
)

// FormDialogs collects annotations with huh forms instead of single keys.
type FormDialogs struct {
	theme      *huh.Theme
	accessible bool
}

// NewFormDialogs returns form-based dialogs. theme is auto, dark or light.
func NewFormDialogs(theme string, accessible bool) *FormDialogs {
	t := huh.ThemeCharm()
	if theme == "light" {
		t = huh.ThemeBase()
	}
	return &FormDialogs{theme: t, accessible: accessible}
}

func (d *FormDialogs) run(fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(d.theme).
		WithAccessible(d.accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return annotate.ErrCancelled
		}
		return err
	}
	return nil
}

// Components shows the categories as a multi-select.
func (d *FormDialogs) Components() (catalog.Selection, error) {
	var picked []string
	err := d.run(
		huh.NewMultiSelect[string]().
			Title("Components").
			Description("space toggles, enter confirms").
			Options(categoryOptions()...).
			Value(&picked),
	)
	if err != nil {
		return nil, err
	}
	return selectionOf(picked), nil
}

// Confirm asks a yes/no question.
func (d *FormDialogs) Confirm(question string) (bool, error) {
	var ok bool
	err := d.run(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)
	return ok, err
}

// Comment reads free text. A blank answer cancels.
func (d *FormDialogs) Comment() (string, error) {
	var text string
	if err := d.run(huh.NewInput().Title("Comment").Value(&text)); err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", annotate.ErrCancelled
	}
	return text, nil
}

// Task asks for start or end and a task in one form.
func (d *FormDialogs) Task() (annotate.TaskChoice, error) {
	choice := annotate.TaskChoice{Action: annotate.ActionStart}
	err := d.run(
		huh.NewSelect[annotate.Action]().
			Title("Task boundary").
			Options(
				huh.NewOption("start", annotate.ActionStart),
				huh.NewOption("end", annotate.ActionEnd),
			).
			Value(&choice.Action),
		huh.NewSelect[string]().
			Title("Task").
			Options(taskOptions()...).
			Value(&choice.Task),
	)
	if err != nil {
		return annotate.TaskChoice{}, err
	}
	if choice.Task == "" {
		return annotate.TaskChoice{}, annotate.ErrCancelled
	}
	return choice, nil
}

func categoryOptions() []huh.Option[string] {
	cats := catalog.Categories()
	options := make([]huh.Option[string], 0, len(cats))
	for i, c := range cats {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", i+1, c.Label), c.Label))
	}
	return options
}

func taskOptions() []huh.Option[string] {
	tasks := catalog.Tasks()
	options := make([]huh.Option[string], 0, len(tasks))
	for i, t := range tasks {
		options = append(options, huh.NewOption(fmt.Sprintf("%c. %s", catalog.TaskKey(i), t), t))
	}
	return options
}

func selectionOf(labels []string) catalog.Selection {
	sel := catalog.NewSelection()
	for _, l := range labels {
		if !sel.Has(l) {
			sel.Toggle(l)
		}
	}
	return sel
}
