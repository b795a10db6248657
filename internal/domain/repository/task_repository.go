package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain/entity"
)

// ErrTaskNotFound is a domain-specific error returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Task, error)

	// ExistsForUser reports whether the owner already has a task with the
	// given title, ignoring case. Like EmailExists, this is an early-exit
	// optimization; the composite unique index is the authoritative guard.
	ExistsForUser(ctx context.Context, userID int64, title string) (bool, error)

	// Create persists a new task and fills in the assigned ID and timestamps.
	Create(ctx context.Context, task *entity.Task) error

	// ListByUser returns the owner's tasks ordered by ascending ID, skipping
	// the first skip records and returning at most take.
	ListByUser(ctx context.Context, userID int64, skip, take int) ([]*entity.Task, error)

	// Update overwrites the title and completion state of an existing task.
	// The owner is never changed. Returns ErrTaskNotFound if no such task
	// exists.
	Update(ctx context.Context, id int64, title string, isDone bool) error

	// Delete removes a task. Returns ErrTaskNotFound if no such task exists.
	Delete(ctx context.Context, id int64) error
}
