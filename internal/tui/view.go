package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func (m model) View() string {
	var b strings.Builder

	header := styleTitle().Render("taskdeck")
	if m.snap.Loading {
		header += " " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View() + "\n\n")
	}

	if len(m.snap.Items) == 0 && !m.snap.Loading {
		b.WriteString(styleMuted().Render("  no tasks found") + "\n")
	}
	for i, t := range m.snap.Items {
		b.WriteString(m.renderRow(t, i == m.cursor) + "\n")
	}

	b.WriteString("\n" + styleMuted().Render(output.Footer(m.snap)) + "\n")

	if m.snap.Err != "" {
		b.WriteString(styleError().Render("error: "+m.snap.Err) + "\n")
	}

	switch m.mode {
	case modeCreate:
		b.WriteString("\n" + m.renderForm("New task", m.titleInput.View(), m.descInput.View()) + "\n")
	case modeEdit:
		title := "Edit task"
		if m.snap.Draft != nil {
			title = fmt.Sprintf("Edit task #%d", m.snap.Draft.TaskID)
		}
		b.WriteString("\n" + m.renderForm(title, m.editTitle.View(), m.editDesc.View()) + "\n")
	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete %q? (y/n)", output.NormalizeTitle(m.pendingDelete.Title))
		b.WriteString("\n" + styleModal().Render(prompt) + "\n")
	}

	b.WriteString("\n" + styleMuted().Render(m.help()) + "\n")
	return b.String()
}

func (m model) renderRow(t service.Task, selected bool) string {
	box := "[ ]"
	title := output.NormalizeTitle(t.Title)
	if t.IsDone {
		box = "[x]"
		title = styleDone().Render(title)
	}
	row := fmt.Sprintf("%s %s", box, title)
	if selected {
		return styleSelected().Render("> " + row)
	}
	return "  " + row
}

func (m model) renderForm(title, titleField, descField string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styleTitle().Render(title),
		"",
		titleField,
		descField,
	)
	return styleModal().Render(content)
}

func (m model) help() string {
	switch m.mode {
	case modeCreate, modeEdit:
		return "tab: switch field   enter: save   esc: cancel"
	case modeSearch:
		return "type to filter   enter/esc: done"
	case modeConfirmDelete:
		return "y: delete   n/esc: keep"
	default:
		return "j/k: move   h/l: page   n: new   e: edit   space: done   d: delete   /: search   r: refresh   q: quit"
	}
}
