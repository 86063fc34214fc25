package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/vlcmark/internal/annotate"
	"github.com/tessro/vlcmark/internal/core"
	"github.com/tessro/vlcmark/internal/tail"
	"github.com/tessro/vlcmark/internal/tui/components"
	"github.com/tessro/vlcmark/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelEvents Panel = iota
	PanelSummary
)

// kindFilters is the cycle order of the t key; "" shows every kind.
var kindFilters = []annotate.Kind{
	"",
	annotate.KindComponents,
	annotate.KindCopyPasted,
	annotate.KindCopyPastedUnchanged,
	annotate.KindTask,
	annotate.KindComment,
}

type eventMsg tail.Event

type followClosedMsg struct{}

// Model is the log viewer model
type Model struct {
	path         string
	width        int
	height       int
	ready        bool
	focusedPanel Panel

	// State
	events    []annotate.Event
	files     []string
	fileIndex int // -1 shows all files
	kindIndex int
	follow    <-chan tail.Event

	// Components
	viewport    viewport.Model
	eventList   *components.EventList
	summaryView *components.Summary

	// Overlays
	showHelp bool

	// Quit flag
	quitting bool
}

// NewModel creates a viewer over events. When follow is non-nil, events
// received from it are appended as they arrive.
func NewModel(path string, events []annotate.Event, follow <-chan tail.Event) Model {
	m := Model{
		path:        path,
		fileIndex:   -1,
		follow:      follow,
		eventList:   components.NewEventList(),
		summaryView: components.NewSummary(),
	}
	for _, ev := range events {
		m.addEvent(ev)
	}
	return m
}

func (m *Model) addEvent(ev annotate.Event) {
	m.events = append(m.events, ev)
	for _, f := range m.files {
		if f == ev.FileName {
			return
		}
	}
	m.files = append(m.files, ev.FileName)
}

func (m Model) waitForEvent() tea.Cmd {
	if m.follow == nil {
		return nil
	}
	ch := m.follow
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return followClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case eventMsg:
		atBottom := m.viewport.AtBottom()
		m.addEvent(msg.Annotation)
		m.refresh()
		if atBottom {
			m.viewport.GotoBottom()
		}
		return m, m.waitForEvent()

	case followClosedMsg:
		m.follow = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "tab", "shift+tab":
		m.focusedPanel = (m.focusedPanel + 1) % 2
		return m, nil

	case "f":
		m.fileIndex++
		if m.fileIndex >= len(m.files) {
			m.fileIndex = -1
		}
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case "t":
		m.kindIndex = (m.kindIndex + 1) % len(kindFilters)
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case "g", "home":
		m.viewport.GotoTop()
		return m, nil

	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Visible returns the events that pass the current file and kind filters.
func (m Model) Visible() []annotate.Event {
	file := m.fileFilter()
	kind := kindFilters[m.kindIndex]

	var out []annotate.Event
	for _, ev := range m.events {
		if file != "" && ev.FileName != file {
			continue
		}
		if kind != "" && ev.Kind() != kind {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (m Model) fileFilter() string {
	if m.fileIndex < 0 || m.fileIndex >= len(m.files) {
		return ""
	}
	return m.files[m.fileIndex]
}

func (m Model) listWidth() int {
	return m.width * 65 / 100
}

func (m *Model) resize() {
	// header(1) + status bar(1) + panel borders(2)
	vpHeight := m.height - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.listWidth() - 4
	if vpWidth < 10 {
		vpWidth = 10
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.eventList.ShowFile = m.fileFilter() == ""
	m.viewport.SetContent(m.eventList.Render(m.Visible(), m.viewport.Width))
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	leftWidth := m.listWidth()
	rightWidth := m.width - leftWidth - 2
	bodyHeight := m.height - 2

	list := styles.Panel(m.focusedPanel == PanelEvents).
		Width(leftWidth - 2).
		Height(bodyHeight - 2).
		Render(m.viewport.View())
	summary := m.summaryView.Render(m.Visible(), rightWidth-2, bodyHeight-2, m.focusedPanel == PanelSummary)

	main := lipgloss.JoinHorizontal(lipgloss.Top, list, summary)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), main, m.renderStatusBar())
}

func (m Model) renderHeader() string {
	file := m.fileFilter()
	if file == "" {
		file = "all files"
	} else {
		file = core.DisplayName(file)
	}
	kind := string(kindFilters[m.kindIndex])
	if kind == "" {
		kind = "all kinds"
	}

	live := ""
	if m.follow != nil {
		live = "  " + styles.StatusIcon(true) + " live"
	}

	header := fmt.Sprintf("%s  %s  %s%s",
		styles.Highlight.Render(core.DisplayName(m.path)),
		styles.Subtitle.Render(file),
		styles.Subtitle.Render(kind),
		live)

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(header)
}

func (m Model) renderStatusBar() string {
	hint := styles.Dim.Render("q:quit  ?:help  f:file  t:kind  j/k:scroll  tab:switch panel")
	pct := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)

	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(hint + strings.Repeat(" ", pad) + pct)
}

func (m Model) renderHelp() string {
	title := "vlcmark view - Keyboard Shortcuts"
	divider := strings.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  q, Ctrl+C    Quit
  ?            Toggle help
  f            Next file filter
  t            Next kind filter
  j/k, ↓/↑     Scroll
  g/G          Top/bottom
  Tab          Switch panel

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the viewer
func Run(path string, events []annotate.Event, follow <-chan tail.Event) error {
	model := NewModel(path, events, follow)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
