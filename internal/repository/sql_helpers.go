package repository

import (
	"errors"

	taskboard_errors "taskboard/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// translate maps gorm/driver errors onto the repository error set.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return taskboard_errors.ErrNotFound
	case isUniqueViolation(err):
		return taskboard_errors.ErrAlreadyExists
	default:
		return taskboard_errors.NewStorageError(op, err)
	}
}
