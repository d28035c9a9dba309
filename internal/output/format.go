// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/listsync"
	"taskdeck/internal/service"
)

// FormatTask formats a task line.
// Format: "{ID:>6}  [x] {TITLE}\n" ("[ ]" for open tasks).
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%6d  %s %s\n", task.ID, checkbox(task.IsDone), NormalizeTitle(task.Title))
}

// FormatPage prints the tasks of a snapshot followed by a footer line.
// An empty page prints "no tasks found" instead of task lines.
func FormatPage(w io.Writer, snap listsync.Snapshot) {
	if len(snap.Items) == 0 {
		fmt.Fprintln(w, "no tasks found")
	}
	for _, t := range snap.Items {
		FormatTask(w, t)
	}
	fmt.Fprintln(w, Footer(snap))
}

// Footer returns "page P/N, T tasks" plus the active search term, if any.
func Footer(snap listsync.Snapshot) string {
	noun := "tasks"
	if snap.Total == 1 {
		noun = "task"
	}
	s := fmt.Sprintf("page %d/%d, %d %s", snap.Page, snap.TotalPages(), snap.Total, noun)
	if term := strings.TrimSpace(snap.SearchTerm); term != "" {
		s += fmt.Sprintf(", search %q", term)
	}
	return s
}

// FormatDetail prints every field of one task.
func FormatDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", NormalizeTitle(task.Title))
	fmt.Fprintf(w, "done:        %t\n", task.IsDone)
	if task.Description != nil {
		fmt.Fprintf(w, "description: %s\n", *task.Description)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeTitle normalizes a task title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
