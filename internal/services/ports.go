package services

import (
	"context"

	"taskboard/internal/domain/task"
	"taskboard/internal/domain/user"

	"github.com/google/uuid"
)

// TaskPersistence is the persistence port the business layer uses for tasks.
// Every mutation writes the row and its event in one transaction.
type TaskPersistence interface {
	GetAll(ctx context.Context) ([]task.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (task.Task, bool, error)
	GetByStatus(ctx context.Context, status task.Status) ([]task.Task, error)
	GetByAssignee(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
	Upsert(ctx context.Context, t task.Task) (task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}

// UserPersistence is the persistence port the business layer uses for users.
type UserPersistence interface {
	GetAll(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.User, bool, error)
	Upsert(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}
