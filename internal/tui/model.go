package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/listsync"
	"taskdeck/internal/service"
)

// model is the Bubble Tea model of the task board. All list state lives in
// the coordinator; the model only keeps a snapshot of it plus the
// terminal-side state (cursor, open form, inputs).
type model struct {
	ctx   context.Context
	coord *listsync.Coordinator

	snap   listsync.Snapshot
	cursor int
	mode   mode
	width  int

	// create form; keeps its values until a create succeeds
	titleInput textinput.Model
	descInput  textinput.Model
	formFocus  int
	submitting bool

	// edit modal, mirrored into the coordinator's draft
	editTitle textinput.Model
	editDesc  textinput.Model
	editFocus int
	saving    bool

	search textinput.Model

	pendingDelete service.Task

	spinner spinner.Model
}

func newModel(ctx context.Context, coord *listsync.Coordinator) model {
	m := model{
		ctx:   ctx,
		coord: coord,
	}

	m.titleInput = newInput("Title", listsync.MaxTitleLen)
	m.descInput = newInput("Description (optional)", listsync.MaxDescriptionLen)
	m.editTitle = newInput("Title", listsync.MaxTitleLen)
	m.editDesc = newInput("Description", listsync.MaxDescriptionLen)
	m.search = newInput("Search titles", listsync.MaxTitleLen)
	m.search.Prompt = "/ "

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m.snap = coord.Snapshot()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 48
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run(opLoad, m.coord.Reload))
}

// run performs fn off the update loop and reports its outcome.
func (m model) run(kind op, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: kind, err: fn(ctx)}
	}
}

// sync re-reads the coordinator's state and keeps the cursor on the page.
func (m *model) sync() {
	m.snap = m.coord.Snapshot()
	if m.cursor >= len(m.snap.Items) {
		m.cursor = len(m.snap.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Items) {
		return service.Task{}, false
	}
	return m.snap.Items[m.cursor], true
}
