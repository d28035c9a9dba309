// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote calls go through this interface.
// Commands and the list state never import the HTTP backend directly.
type Service interface {
	// ListTasks returns one page of all tasks, newest first.
	ListTasks(ctx context.Context, skip, limit int) (ListPage, error)

	// SearchTasks returns one page of tasks whose title matches query.
	SearchTasks(ctx context.Context, query string, skip, limit int) (ListPage, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask creates a new task and returns it.
	CreateTask(ctx context.Context, in NewTask) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int) error

	// Health checks that the service is reachable.
	Health(ctx context.Context) error
}
