// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"taskdeck/internal/service"
)

// NotFoundBody is the body the task service returns for unknown ids.
const NotFoundBody = `{"detail":"Task not found"}`

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = service.RequestFailed(http.StatusNotFound, NotFoundBody)

// FakeService is an in-memory implementation of service.Service for testing.
// It mirrors the remote service: newest first, case-insensitive title search,
// totals computed over the whole filtered set.
type FakeService struct {
	mu     sync.Mutex
	tasks  map[int]service.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListErr   error
	SearchErr error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	HealthErr error

	// ReadHook, if set, runs at the start of every list or search read,
	// outside the lock. Tests use it to hold a read in flight.
	ReadHook func(ctx context.Context, query string, skip, limit int)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:  make(map[int]service.Task),
		nextID: 1,
	}
}

// AddTask adds an open task with the next id and returns it.
func (f *FakeService) AddTask(title string) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.nextID, Title: title}
	f.tasks[t.ID] = t
	f.nextID++
	return t
}

// AddTasks adds n tasks titled "<prefix> 1" .. "<prefix> n" in that order.
func (f *FakeService) AddTasks(prefix string, n int) {
	for i := 1; i <= n; i++ {
		f.AddTask(prefix + " " + strconv.Itoa(i))
	}
}

// Put stores t as-is, replacing any task with the same id.
func (f *FakeService) Put(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = t
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
}

// Task returns the stored task with id.
func (f *FakeService) Task(id int) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	return t, ok
}

// Count returns the number of stored tasks.
func (f *FakeService) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// Calls returns the recorded operation names in call order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times op was called.
func (f *FakeService) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, skip, limit int) (service.ListPage, error) {
	f.record("list")
	if f.ReadHook != nil {
		f.ReadHook(ctx, "", skip, limit)
	}
	if err := ctx.Err(); err != nil {
		return service.ListPage{}, &service.RequestFailedError{Message: err.Error(), Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return service.ListPage{}, f.ListErr
	}
	return f.pageLocked(f.sortedLocked(""), skip, limit), nil
}

// SearchTasks implements service.Service.
func (f *FakeService) SearchTasks(ctx context.Context, query string, skip, limit int) (service.ListPage, error) {
	f.record("search")
	if f.ReadHook != nil {
		f.ReadHook(ctx, query, skip, limit)
	}
	if err := ctx.Err(); err != nil {
		return service.ListPage{}, &service.RequestFailedError{Message: err.Error(), Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SearchErr != nil {
		return service.ListPage{}, f.SearchErr
	}
	return f.pageLocked(f.sortedLocked(query), skip, limit), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (service.Task, error) {
	f.record("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return service.Task{}, ErrNotFound
	}
	return t, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.NewTask) (service.Task, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	if in.Title == "" {
		return service.Task{}, service.RequestFailed(http.StatusUnprocessableEntity, `{"detail":"title must not be empty"}`)
	}
	t := service.Task{ID: f.nextID, Title: in.Title, Description: in.Description}
	f.tasks[t.ID] = t
	f.nextID++
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	f.record("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return service.Task{}, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		d := *patch.Description
		t.Description = &d
	}
	if patch.IsDone != nil {
		t.IsDone = *patch.IsDone
	}
	f.tasks[id] = t
	return t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

// Health implements service.Service.
func (f *FakeService) Health(ctx context.Context) error {
	f.record("health")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.HealthErr
}

// sortedLocked returns tasks matching query, newest first.
func (f *FakeService) sortedLocked(query string) []service.Task {
	query = strings.ToLower(query)
	var out []service.Task
	for _, t := range f.tasks {
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *FakeService) pageLocked(all []service.Task, skip, limit int) service.ListPage {
	page := service.ListPage{Items: []service.Task{}, Total: len(all), Skip: skip, Limit: limit}
	if skip >= len(all) {
		return page
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	page.Items = append(page.Items, all[skip:end]...)
	return page
}
