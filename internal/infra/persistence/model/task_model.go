package model

import "time"

// TaskModel mirrors the 'tasks' table. (user_id, lower(title)) carries a
// unique composite index created in the migration step; it is the
// authoritative guard for the per-owner title uniqueness rule.
type TaskModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(255);not null"`
	IsDone    bool   `gorm:"not null;default:false"`
	UserID    int64  `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
