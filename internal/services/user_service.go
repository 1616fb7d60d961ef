package services

import (
	"context"
	"fmt"

	"taskboard/internal/domain/user"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/google/uuid"
)

type UserService struct {
	store UserPersistence
}

func NewUserService(store UserPersistence) *UserService {
	return &UserService{store: store}
}

// Create stores a new user. The id must be unset and the name a single word.
func (s *UserService) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID != uuid.Nil {
		return user.User{}, fmt.Errorf("%w: user id must not be set", taskboard_errors.ErrMalformedRequest)
	}
	if !user.ValidName(u.Name) {
		return user.User{}, fmt.Errorf("%w: invalid user name %q", taskboard_errors.ErrMalformedRequest, u.Name)
	}
	return s.store.Upsert(ctx, u)
}

// Update renames the user with the given id.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, u user.User) (user.User, error) {
	if id == uuid.Nil {
		return user.User{}, fmt.Errorf("%w: user id is required", taskboard_errors.ErrMalformedRequest)
	}
	if !user.ValidName(u.Name) {
		return user.User{}, fmt.Errorf("%w: invalid user name %q", taskboard_errors.ErrMalformedRequest, u.Name)
	}
	u.ID = id
	return s.store.Upsert(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *UserService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *UserService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.store.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, bool, error) {
	return s.store.GetByID(ctx, id)
}
