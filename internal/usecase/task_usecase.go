package usecase

import "context"

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Title  string `json:"title" validate:"required"`
	IsDone bool   `json:"isDone"`
	UserID int64  `json:"userId" validate:"required,gt=0"`
}

// UpdateTaskInput defines the data for a task update. Only the title and the
// completion state are written; the owner never changes.
type UpdateTaskInput struct {
	ID     int64  `json:"id"`
	Title  string `json:"title" validate:"required"`
	IsDone bool   `json:"isDone"`
}

// TaskOutput is what the request layer sees for a task.
type TaskOutput struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
	UserID int64  `json:"userId"`
}

// TaskUsecase defines the interface for task-related business operations.
type TaskUsecase interface {
	// Create inserts a new task for its owner. Fails with a conflict error
	// when the owner already has a task with the same title (ignoring case).
	Create(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error)

	// GetByID returns a task. Non-positive ids are rejected as invalid input
	// before the store is consulted.
	GetByID(ctx context.Context, id int64) (*TaskOutput, error)

	// List returns the owner's tasks in stable id order, windowed by skip and
	// take. The take bound is clamped by the caller.
	List(ctx context.Context, userID int64, skip, take int) ([]*TaskOutput, error)

	// Update overwrites a task's title and completion state.
	Update(ctx context.Context, input *UpdateTaskInput) error

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error
}
