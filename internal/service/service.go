// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) when the backend has no task with the given ID.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task backend operations.
// All task API calls go through this interface.
// The view-model and commands never build HTTP requests directly.
type Service interface {
	// ListTasks returns every task in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a task. The returned task carries the server-assigned ID.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces title, description and status of an existing task.
	UpdateTask(ctx context.Context, id int64, in TaskInput) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id int64) error
}
