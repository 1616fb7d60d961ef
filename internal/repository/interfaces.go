package repository

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/task"
	"taskboard/internal/domain/user"
)

// TaskRepository is the aggregate store for tasks.
// Lookups return ErrNotFound for missing rows; any other failure is a StorageError.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	GetAll(ctx context.Context) ([]task.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (task.Task, error)
	GetByStatus(ctx context.Context, status task.Status) ([]task.Task, error)
	GetByAssignee(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
	Update(ctx context.Context, t task.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Locking reads, only meaningful inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (task.Task, error)
	GetAllForUpdate(ctx context.Context) ([]task.Task, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository is the aggregate store for users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetAll(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (user.User, error)
	GetAllForUpdate(ctx context.Context) ([]user.User, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// EventRepository is the append-only event log shared by all aggregate types.
// It has no update or delete operations.
type EventRepository interface {
	Append(ctx context.Context, e *event.Event) error
	History(ctx context.Context, entityName string, entityID uuid.UUID) ([]event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	Count(ctx context.Context) (int64, error)
}

// Stores groups the repositories bound to one transaction.
type Stores struct {
	Tasks  TaskRepository
	Users  UserRepository
	Events EventRepository
}

// Transactor runs fn inside a single database transaction. The transaction is
// committed when fn returns nil and rolled back on error or panic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
