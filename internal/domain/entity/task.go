package entity

import "time"

// Task is a unit of work owned by exactly one User. A title is unique per
// owner (case-insensitive); the same title may exist under different owners.
type Task struct {
	ID        int64     // Numeric identifier assigned by the store on creation.
	Title     string    // Non-empty task title, unique per owner.
	IsDone    bool      // Completion state. Mutable.
	UserID    int64     // Owning account. Immutable; account deletion cascades.
	CreatedAt time.Time // Timestamp of when this task was created.
	UpdatedAt time.Time // Timestamp of the last modification to this task.
}
