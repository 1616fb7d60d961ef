package taskboard_errors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Business errors surfaced by the persistence services
var (
	ErrMalformedRequest     = errors.New("malformed request")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrStorageFailure       = errors.New("storage failure")
	ErrConsistencyViolation = errors.New("consistency violation")
)

// StorageError wraps a driver error so callers can match ErrStorageFailure
// without losing the underlying cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageFailure, e.Err}
}

// NewStorageError returns nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsUserError reports whether err is one of the business errors a client can act on.
func IsUserError(err error) bool {
	return errors.Is(err, ErrMalformedRequest) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
