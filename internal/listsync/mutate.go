package listsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"taskdeck/internal/service"
)

// Field limits enforced by the task service, mirrored locally so an
// over-long field never costs a round trip.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

var (
	// ErrTitleRequired is returned when a title is empty after trimming.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLen.
	ErrTitleTooLong = fmt.Errorf("title must be at most %d characters", MaxTitleLen)

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLen.
	ErrDescriptionTooLong = fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
)

// Create creates a task and then shows page 1, where new tasks sort in the
// service's newest-first order. A blank title performs no write and no read.
func (c *Coordinator) Create(ctx context.Context, title, description string) error {
	t, err := normalizeTitle(title)
	if err != nil {
		return c.reject(err)
	}
	d, err := normalizeDescription(description)
	if err != nil {
		return c.reject(err)
	}

	c.begin()
	defer c.end()

	if _, err := c.svc.CreateTask(ctx, service.NewTask{Title: t, Description: d}); err != nil {
		c.fail(err)
		return err
	}
	return c.execute(ctx, c.stamp(1))
}

// SetDone marks a task done or open and then re-reads the current page.
func (c *Coordinator) SetDone(ctx context.Context, id int, done bool) error {
	c.begin()
	defer c.end()

	if _, err := c.svc.UpdateTask(ctx, id, service.TaskPatch{IsDone: &done}); err != nil {
		c.fail(err)
		return err
	}
	return c.execute(ctx, c.stamp(c.currentPage()))
}

// Toggle flips the done flag of task as last displayed.
func (c *Coordinator) Toggle(ctx context.Context, task service.Task) error {
	return c.SetDone(ctx, task.ID, !task.IsDone)
}

// Delete deletes a task and then reads the page predicted from the
// pre-delete total (see DeleteTargetPage).
func (c *Coordinator) Delete(ctx context.Context, id int) error {
	c.begin()
	defer c.end()

	c.mu.Lock()
	page, total := c.page, c.total
	c.mu.Unlock()

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.fail(err)
		return err
	}
	return c.execute(ctx, c.stamp(DeleteTargetPage(page, total, c.pageSize)))
}

// reject records a local validation failure. No remote call is made.
func (c *Coordinator) reject(err error) error {
	c.fail(err)
	return err
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(t) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return t, nil
}

// normalizeDescription maps blank input to absent.
func normalizeDescription(description string) (*string, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	return &d, nil
}
