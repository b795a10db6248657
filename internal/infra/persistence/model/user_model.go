// Package model contains the GORM persistence models mirroring the database tables.
package model

import "time"

// UserModel mirrors the 'users' table. The email column carries a
// case-insensitive unique index (created in the migration step, since GORM
// tags cannot express an index over lower(email)).
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	DisplayName  string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash []byte `gorm:"not null"`
	PasswordSalt []byte `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Tasks []TaskModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
