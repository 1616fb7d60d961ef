// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"taskboard/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB creates a migrated in-memory SQLite database. The pool is pinned to a
// single connection because every new connection to ":memory:" opens an empty
// database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get generic database object: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	if err := repository.InitSchema(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
