package repository

import (
	"context"
	"errors"
	"time"

	taskboard_errors "taskboard/pkg/errors"

	"gorm.io/gorm"
)

type GormTransactor struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTransactor(db *gorm.DB, now func() time.Time) Transactor {
	return &GormTransactor{db: db, now: now}
}

// WithinTransaction hands fn a set of stores bound to one transaction. Errors
// returned by fn are passed through unchanged; failures to begin or commit are
// reported as storage failures.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	if t.db == nil {
		return taskboard_errors.NewStorageError("begin transaction", errors.New("database not initialized"))
	}

	var fnErr error
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(ctx, Stores{
			Tasks:  NewTaskRepository(tx),
			Users:  NewUserRepository(tx),
			Events: NewEventRepository(tx, t.now),
		})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return taskboard_errors.NewStorageError("commit transaction", err)
	}
	return nil
}
