package annotate

import "github.com/tessro/vlcmark/internal/catalog"

// Display renders the annotation session for the operator.
type Display interface {
	NowPlaying(file string, index, total int)
	Paused(m Mark)
	Resumed()

	CategoryMenu(categories []catalog.Category, selected catalog.Selection)
	ActionMenu()
	TaskMenu(action Action, tasks []string)
	Prompt(question string)

	Logged(ev Event)
	Cancelled()
	Error(err error)
}
