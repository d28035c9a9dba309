package listsync

import (
	"context"
	"errors"
	"log/slog"

	"taskdeck/internal/service"
)

// maxClampReads bounds the follow-up reads issued when a page turns out to
// lie past the last page.
const maxClampReads = 2

// ErrListChanged is reported when the list keeps shrinking under the
// follow-up reads and no page inside the range could be read.
var ErrListChanged = errors.New("tasks changed while loading; refresh to retry")

// Refresh reads page (list or search, depending on the current term) and
// installs it. On failure the previous items, total and page are kept and
// the error is recorded.
func (c *Coordinator) Refresh(ctx context.Context, page int) error {
	c.begin()
	defer c.end()
	return c.execute(ctx, c.stamp(page))
}

// Reload re-reads the current page.
func (c *Coordinator) Reload(ctx context.Context) error {
	c.begin()
	defer c.end()
	return c.execute(ctx, c.stamp(c.currentPage()))
}

// SetSearch replaces the search term and reads page 1. The term and the
// page reset are applied together when the read is issued, so no snapshot
// pairs the new term with the old page.
func (c *Coordinator) SetSearch(ctx context.Context, term string) error {
	c.begin()
	defer c.end()

	c.mu.Lock()
	c.search = term
	c.page = 1
	req := c.stampLocked(1)
	c.mu.Unlock()
	c.notify()

	return c.execute(ctx, req)
}

// execute performs req and installs its result if req is still the latest
// read. A superseded result is dropped, including its error; the newer read
// owns the outcome, so execute reports nil for it.
func (c *Coordinator) execute(ctx context.Context, req readRequest) error {
	for clamps := 0; ; clamps++ {
		page, err := c.read(ctx, req)

		c.mu.Lock()
		if req.seq != c.readSeq {
			latest := c.readSeq
			c.mu.Unlock()
			c.log.DebugContext(ctx, "discarding stale page",
				slog.Uint64("seq", req.seq),
				slog.Uint64("latest", latest),
				slog.Int("page", req.page),
			)
			return nil
		}

		if err != nil {
			c.errMsg = service.Message(err)
			c.mu.Unlock()
			c.notify()
			return err
		}

		last := TotalPages(page.Total, c.pageSize)
		if req.page > last {
			if clamps == maxClampReads {
				c.errMsg = service.Message(ErrListChanged)
				c.mu.Unlock()
				c.notify()
				return ErrListChanged
			}
			// Records vanished server-side; read the new last page instead.
			req = c.stampLocked(last)
			c.mu.Unlock()
			c.log.DebugContext(ctx, "page past end, clamping",
				slog.Int("page", req.page),
				slog.Int("total", page.Total),
			)
			continue
		}

		c.items = page.Items
		c.total = page.Total
		c.page = req.page
		c.mu.Unlock()
		c.notify()

		c.log.DebugContext(ctx, "installed page",
			slog.Uint64("seq", req.seq),
			slog.Int("page", req.page),
			slog.Int("items", len(page.Items)),
			slog.Int("total", page.Total),
		)
		return nil
	}
}

func (c *Coordinator) read(ctx context.Context, req readRequest) (service.ListPage, error) {
	skip := Offset(req.page, c.pageSize)
	if req.term != "" {
		return c.svc.SearchTasks(ctx, req.term, skip, c.pageSize)
	}
	return c.svc.ListTasks(ctx, skip, c.pageSize)
}

func (c *Coordinator) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}
