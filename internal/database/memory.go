package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OpenMemory opens a named, migrated in-memory SQLite database. Each name is an
// isolated database, which keeps tests independent of each other. The pool is
// capped at one connection so shared-cache table locks cannot occur.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
