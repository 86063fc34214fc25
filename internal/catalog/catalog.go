// Package catalog holds the fixed category and task lists an operator picks
// from while annotating.
package catalog

import (
	"sort"
)

// Category is one selectable observation label.
type Category struct {
	Label       string
	Description string
	Color       string // ANSI 256 color code, cosmetic only
}

// categories is ordered; position i is selected with key i+1.
var categories = [...]Category{
	{Label: "natural language", Description: "Prose the user typed or read", Color: "82"},
	{Label: "source code", Description: "Code visible in the prompt or response", Color: "39"},
	{Label: "tool output", Description: "Output pasted from a terminal or tool", Color: "214"},
	{Label: "error message", Description: "A compiler, runtime or tool error", Color: "196"},
	{Label: "documentation", Description: "Docs, READMEs or API references", Color: "141"},
}

// tasks is ordered; keys 1-9 select the first nine and 0 selects the tenth.
var tasks = [10]string{
	"setup-environment",
	"explore-codebase",
	"implement-feature",
	"fix-bug",
	"write-tests",
	"refactor",
	"review-changes",
	"write-docs",
	"debug-build",
	"other",
}

// Categories returns the category catalog in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// CategoryByKey maps a menu key ('1' for the first entry) to a category.
func CategoryByKey(key rune) (Category, bool) {
	if key < '1' || key > '9' {
		return Category{}, false
	}
	i := int(key - '1')
	if i >= len(categories) {
		return Category{}, false
	}
	return categories[i], true
}

// Tasks returns the task catalog in display order.
func Tasks() []string {
	out := make([]string, len(tasks))
	copy(out, tasks[:])
	return out
}

// TaskByKey maps a digit key to a task: '1'-'9' pick entries one to nine,
// '0' picks the tenth.
func TaskByKey(key rune) (string, bool) {
	switch {
	case key == '0':
		return tasks[9], true
	case key >= '1' && key <= '9':
		return tasks[key-'1'], true
	default:
		return "", false
	}
}

// TaskKey is the inverse of TaskByKey for display.
func TaskKey(index int) rune {
	if index == 9 {
		return '0'
	}
	return rune('1' + index)
}

// Selection is a set of category labels. Toggling a label twice removes it.
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Toggle adds label if absent and removes it if present.
func (s Selection) Toggle(label string) {
	if _, ok := s[label]; ok {
		delete(s, label)
		return
	}
	s[label] = struct{}{}
}

// Has reports whether label is selected.
func (s Selection) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Len returns the number of selected labels.
func (s Selection) Len() int {
	return len(s)
}

// Sorted returns the labels in lexicographic order.
func (s Selection) Sorted() []string {
	out := make([]string, 0, len(s))
	for label := range s {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
