package listsync

import "context"

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Offset returns the skip value for a 1-based page.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// DeleteTargetPage returns the page to show after deleting one record while
// on page, computed from the pre-delete total so the view never lands on a
// page that is now empty.
func DeleteTargetPage(page, total, pageSize int) int {
	remaining := total - 1
	if remaining < 0 {
		remaining = 0
	}
	return clampPage(page, TotalPages(remaining, pageSize))
}

func clampPage(page, last int) int {
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// GoPrev reads the previous page. It does nothing on the first page.
func (c *Coordinator) GoPrev(ctx context.Context) error {
	return c.goRelative(ctx, -1)
}

// GoNext reads the next page. It does nothing on the last page.
func (c *Coordinator) GoNext(ctx context.Context) error {
	return c.goRelative(ctx, 1)
}

// GoTo reads page, clamped to [1, TotalPages]. It does nothing when the
// clamped page is the current page.
func (c *Coordinator) GoTo(ctx context.Context, page int) error {
	c.mu.Lock()
	target := clampPage(page, TotalPages(c.total, c.pageSize))
	current := c.page
	c.mu.Unlock()

	if target == current {
		return nil
	}
	return c.Refresh(ctx, target)
}

func (c *Coordinator) goRelative(ctx context.Context, delta int) error {
	return c.GoTo(ctx, c.currentPage()+delta)
}
