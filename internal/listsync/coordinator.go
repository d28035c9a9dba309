// Package listsync keeps a client-side view of one page of tasks consistent
// with the remote service across mutations, search changes and page
// navigation.
//
// Every mutation performs exactly one remote write and then re-reads the
// target page; write responses are never merged into the displayed list.
// Reads are stamped with a sequence number when issued and only the latest
// stamp may install its result, so a slow earlier read can never overwrite
// a newer one.
//
// There is no timeout: a hung remote call keeps Loading raised until the
// caller's context is cancelled.
package listsync

import (
	"log/slog"
	"strings"
	"sync"

	"taskdeck/internal/service"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 6

// Options configures a Coordinator.
type Options struct {
	PageSize int

	// Page and SearchTerm seed the initial state without reading.
	Page       int
	SearchTerm string

	// Logger receives debug logs. Nil means discard.
	Logger *slog.Logger

	// OnChange, if set, is called after every state change, outside the
	// coordinator's lock. It may be called from any goroutine.
	OnChange func()
}

// Coordinator owns the list state: the displayed items, the total, the
// page, the search term, the loading flag, the current error and the edit
// draft. It is safe for concurrent use; the lock is never held across a
// remote call.
type Coordinator struct {
	svc      service.Service
	pageSize int
	log      *slog.Logger
	onChange func()

	mu       sync.Mutex
	items    []service.Task
	total    int
	page     int
	search   string
	inflight int
	errMsg   string
	readSeq  uint64
	draft    *EditDraft
	draftGen uint64
}

// New creates a Coordinator with no items, on opts.Page (default 1) with
// opts.SearchTerm. Nothing is read until Reload (or another operation) is
// called.
func New(svc service.Service, opts Options) *Coordinator {
	size := opts.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		svc:      svc,
		pageSize: size,
		log:      log,
		onChange: opts.OnChange,
		page:     max(opts.Page, 1),
		search:   opts.SearchTerm,
	}
}

// Snapshot is an immutable copy of the coordinator's state.
type Snapshot struct {
	Items      []service.Task
	Total      int
	Page       int
	PageSize   int
	SearchTerm string
	Loading    bool
	Err        string
	Draft      *EditDraft
}

// TotalPages returns max(1, ceil(Total/PageSize)).
func (s Snapshot) TotalPages() int {
	return TotalPages(s.Total, s.PageSize)
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]service.Task, len(c.items))
	copy(items, c.items)

	var draft *EditDraft
	if c.draft != nil {
		d := *c.draft
		draft = &d
	}

	return Snapshot{
		Items:      items,
		Total:      c.total,
		Page:       c.page,
		PageSize:   c.pageSize,
		SearchTerm: c.search,
		Loading:    c.inflight > 0,
		Err:        c.errMsg,
		Draft:      draft,
	}
}

// begin raises loading and clears the current error. Every begin is paired
// with exactly one deferred end.
func (c *Coordinator) begin() {
	c.mu.Lock()
	c.inflight++
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) end() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
	c.notify()
}

// fail records err as the current user-visible error.
func (c *Coordinator) fail(err error) {
	c.mu.Lock()
	c.errMsg = service.Message(err)
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// readRequest is a read stamped at issue time. page is the target page; it
// becomes the displayed page only when the read's result is installed.
type readRequest struct {
	seq  uint64
	page int
	term string
}

// stampLocked issues a new read stamp for page. Any read issued earlier
// becomes stale.
func (c *Coordinator) stampLocked(page int) readRequest {
	if page < 1 {
		page = 1
	}
	c.readSeq++
	return readRequest{
		seq:  c.readSeq,
		page: page,
		term: strings.TrimSpace(c.search),
	}
}

func (c *Coordinator) stamp(page int) readRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stampLocked(page)
}
