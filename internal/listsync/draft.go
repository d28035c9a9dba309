package listsync

import (
	"context"
	"errors"

	"taskdeck/internal/service"
)

// ErrNoDraft is returned by draft operations when no edit is open.
var ErrNoDraft = errors.New("no edit in progress")

// EditDraft is the local copy of a task's editable fields while an edit is
// open.
type EditDraft struct {
	TaskID      int
	Title       string
	Description string
}

// OpenEdit opens a draft seeded from task. An open draft is replaced and its
// unsaved edits are discarded.
func (c *Coordinator) OpenEdit(task service.Task) {
	c.mu.Lock()
	c.draft = &EditDraft{
		TaskID:      task.ID,
		Title:       task.Title,
		Description: task.DescriptionText(),
	}
	c.draftGen++
	c.mu.Unlock()
	c.notify()
}

// UpdateDraft replaces the draft's fields.
func (c *Coordinator) UpdateDraft(title, description string) error {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return ErrNoDraft
	}
	c.draft.Title = title
	c.draft.Description = description
	c.mu.Unlock()
	c.notify()
	return nil
}

// CancelEdit discards the draft without any remote call.
func (c *Coordinator) CancelEdit() {
	c.mu.Lock()
	c.draft = nil
	c.draftGen++
	c.mu.Unlock()
	c.notify()
}

// Draft returns a copy of the open draft.
func (c *Coordinator) Draft() (EditDraft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return EditDraft{}, false
	}
	return *c.draft, true
}

// SaveEdit writes the draft's title and description. The draft closes only
// if the write succeeds; otherwise it stays open with its fields intact and
// the error is recorded. After a successful write the current page is
// re-read.
//
// A blank description is sent as absent, which the service treats as
// "leave unchanged".
func (c *Coordinator) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return c.reject(ErrNoDraft)
	}
	d := *c.draft
	gen := c.draftGen
	c.mu.Unlock()

	title, err := normalizeTitle(d.Title)
	if err != nil {
		return c.reject(err)
	}
	desc, err := normalizeDescription(d.Description)
	if err != nil {
		return c.reject(err)
	}

	c.begin()
	defer c.end()

	patch := service.TaskPatch{Title: &title, Description: desc}
	if _, err := c.svc.UpdateTask(ctx, d.TaskID, patch); err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	// A draft opened or cancelled while the write was in flight is not ours.
	if c.draftGen == gen {
		c.draft = nil
		c.draftGen++
	}
	c.mu.Unlock()
	c.notify()

	return c.execute(ctx, c.stamp(c.currentPage()))
}
