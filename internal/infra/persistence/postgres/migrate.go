package postgres

import (
	"gorm.io/gorm"

	"taskdeck/internal/errors"
	"taskdeck/internal/infra/persistence/model"
)

// Index DDL kept as plain SQL: GORM tags cannot express expression indexes,
// and these two are the authoritative guards behind the application-level
// existence checks. A check-then-insert race ends in a unique violation here,
// never in a duplicate row. The statements are valid on PostgreSQL and SQLite
// alike, so tests run the same migration.
var indexStatements = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_email ON users (lower(email))",
	"CREATE UNIQUE INDEX IF NOT EXISTS uniq_tasks_user_title ON tasks (user_id, lower(title))",
}

// Migrate creates the schema and the case-insensitive unique indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.UserModel{}, &model.TaskModel{}); err != nil {
		return errors.Wrap(err, "auto-migrate failed")
	}

	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "index creation failed: %s", stmt)
		}
	}

	return nil
}
