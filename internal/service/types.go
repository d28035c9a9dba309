// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task record owned by the remote service.
type Task struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsDone      bool    `json:"is_done"`
}

// DescriptionText returns the description, or "" when absent.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// ListPage is one page of query results plus the total matching count.
// Total counts the whole filtered set, not just Items.
type ListPage struct {
	Items []Task `json:"items"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// NewTask is the body of a create request.
// A nil Description is sent as null.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// TaskPatch is the body of a partial update. Nil fields are left unchanged
// by the service.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDone      *bool   `json:"is_done,omitempty"`
}
