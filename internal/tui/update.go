package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/listsync"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateChangedMsg:
		m.sync()
		return m, nil

	case opDoneMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// finish applies the outcome of an operation. Failures leave forms open
// with their values; the error itself is shown from the snapshot.
func (m model) finish(msg opDoneMsg) model {
	m.sync()
	switch msg.op {
	case opCreate:
		m.submitting = false
		if msg.err == nil && m.mode == modeCreate {
			m.titleInput.Reset()
			m.descInput.Reset()
			m.closeForm()
		}
	case opEdit:
		m.saving = false
		if !draftOpen(m.coord) && m.mode == modeEdit {
			m.closeForm()
		}
	}
	return m
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Items)-1 {
			m.cursor++
		}
	case "left", "h", "pgup":
		m.cursor = 0
		return m, m.run(opPage, m.coord.GoPrev)
	case "right", "l", "pgdown":
		m.cursor = 0
		return m, m.run(opPage, m.coord.GoNext)
	case "r":
		return m, m.run(opLoad, m.coord.Reload)
	case "n":
		m.mode = modeCreate
		m.formFocus = fieldTitle
		m.descInput.Blur()
		cmd := m.titleInput.Focus()
		return m, cmd
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.coord.OpenEdit(task)
		d, _ := m.coord.Draft()
		m.editTitle.SetValue(d.Title)
		m.editDesc.SetValue(d.Description)
		m.editTitle.CursorEnd()
		m.editDesc.CursorEnd()
		m.editFocus = fieldTitle
		m.editDesc.Blur()
		m.mode = modeEdit
		m.sync()
		cmd := m.editTitle.Focus()
		return m, cmd
	case " ", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(opToggle, func(ctx context.Context) error {
			return m.coord.Toggle(ctx, task)
		})
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDelete = task
		m.mode = modeConfirmDelete
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.snap.SearchTerm)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	}
	return m, nil
}

func (m model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "shift+tab":
		if m.formFocus == fieldTitle {
			m.formFocus = fieldDescription
			m.titleInput.Blur()
			cmd := m.descInput.Focus()
			return m, cmd
		}
		m.formFocus = fieldTitle
		m.descInput.Blur()
		cmd := m.titleInput.Focus()
		return m, cmd
	case "enter":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		title, desc := m.titleInput.Value(), m.descInput.Value()
		return m, m.run(opCreate, func(ctx context.Context) error {
			return m.coord.Create(ctx, title, desc)
		})
	}

	var cmd tea.Cmd
	if m.formFocus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.coord.CancelEdit()
		m.closeForm()
		m.sync()
		return m, nil
	case "tab", "shift+tab":
		if m.editFocus == fieldTitle {
			m.editFocus = fieldDescription
			m.editTitle.Blur()
			cmd := m.editDesc.Focus()
			return m, cmd
		}
		m.editFocus = fieldTitle
		m.editDesc.Blur()
		cmd := m.editTitle.Focus()
		return m, cmd
	case "enter":
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.run(opEdit, m.coord.SaveEdit)
	}

	var cmd tea.Cmd
	if m.editFocus == fieldTitle {
		m.editTitle, cmd = m.editTitle.Update(msg)
	} else {
		m.editDesc, cmd = m.editDesc.Update(msg)
	}
	// The draft is closed only by a save or cancel, so this cannot fail here.
	_ = m.coord.UpdateDraft(m.editTitle.Value(), m.editDesc.Value())
	return m, cmd
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	term := m.search.Value()
	if term == before {
		return m, cmd
	}

	// Every edit issues a read; only the latest one is installed.
	m.cursor = 0
	search := m.run(opSearch, func(ctx context.Context) error {
		return m.coord.SetSearch(ctx, term)
	})
	return m, tea.Batch(cmd, search)
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.pendingDelete.ID
		m.mode = modeList
		return m, m.run(opDelete, func(ctx context.Context) error {
			return m.coord.Delete(ctx, id)
		})
	case "n", "esc", "q":
		m.mode = modeList
	}
	return m, nil
}

func (m *model) closeForm() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.editTitle.Blur()
	m.editDesc.Blur()
	m.mode = modeList
}

// draftOpen reports whether the coordinator still holds an edit draft.
func draftOpen(c *listsync.Coordinator) bool {
	_, ok := c.Draft()
	return ok
}
