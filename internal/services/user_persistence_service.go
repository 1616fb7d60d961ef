package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/user"
	"taskboard/internal/events"
	"taskboard/internal/repository"
	taskboard_errors "taskboard/pkg/errors"
	"taskboard/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ UserPersistence = (*UserPersistenceService)(nil)

// UserPersistenceService stores users and records every change in the event log.
// User names are unique among stored users.
type UserPersistenceService struct {
	users     repository.UserRepository
	tx        repository.Transactor
	publisher events.Publisher
	now       func() time.Time
	log       *logger.Logger
}

func NewUserPersistenceService(
	users repository.UserRepository,
	tx repository.Transactor,
	publisher events.Publisher,
	now func() time.Time,
	log *logger.Logger,
) *UserPersistenceService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &UserPersistenceService{users: users, tx: tx, publisher: publisher, now: now, log: log}
}

func (s *UserPersistenceService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserPersistenceService) GetByID(ctx context.Context, id uuid.UUID) (user.User, bool, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, taskboard_errors.ErrNotFound) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, err
	}
	return u, true, nil
}

// Upsert creates the user when it has no id and renames it otherwise.
func (s *UserPersistenceService) Upsert(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		return s.create(ctx, u)
	}
	return s.update(ctx, u)
}

func (s *UserPersistenceService) create(ctx context.Context, u user.User) (user.User, error) {
	var appended []event.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		taken, err := st.Users.ExistsByName(ctx, u.Name)
		if err != nil {
			return err
		}
		if taken {
			return duplicateName(u.Name)
		}

		u.ID = uuid.New()
		u.CreatedAt = s.now()
		if err := st.Users.Create(ctx, &u); err != nil {
			// the unique index catches a concurrent create with the same name
			if errors.Is(err, taskboard_errors.ErrAlreadyExists) {
				return duplicateName(u.Name)
			}
			return taskboard_errors.NewStorageError("create user", err)
		}

		e, err := event.InsertEventOf(u, noActor)
		if err != nil {
			return taskboard_errors.NewStorageError("build insert event", err)
		}
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append insert event", err)
		}
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	s.log.DebugCtx(ctx, "user created", zap.String("user_id", u.ID.String()))
	publishCommitted(ctx, s.publisher, s.log, appended)
	return u, nil
}

// update overwrites the name only. The new name is not checked up front; a
// collision is rejected by the unique index and rolls the transaction back.
func (s *UserPersistenceService) update(ctx context.Context, u user.User) (user.User, error) {
	var (
		updated  user.User
		appended []event.Event
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		existing, err := st.Users.GetByIDForUpdate(ctx, u.ID)
		if err != nil {
			return userLookupError(u.ID, err)
		}

		existing.Name = u.Name
		if err := st.Users.Update(ctx, existing); err != nil {
			if errors.Is(err, taskboard_errors.ErrAlreadyExists) {
				return duplicateName(u.Name)
			}
			return userLookupError(u.ID, err)
		}

		e, err := event.UpdateEventOf(existing, noActor)
		if err != nil {
			return taskboard_errors.NewStorageError("build update event", err)
		}
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append update event", err)
		}
		updated = existing
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	s.log.DebugCtx(ctx, "user updated", zap.String("user_id", updated.ID.String()))
	publishCommitted(ctx, s.publisher, s.log, appended)
	return updated, nil
}

func (s *UserPersistenceService) Delete(ctx context.Context, id uuid.UUID) error {
	var appended []event.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		existing, err := st.Users.GetByIDForUpdate(ctx, id)
		if err != nil {
			return userLookupError(id, err)
		}

		e := event.DeleteEventOf(existing, noActor)
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append delete event", err)
		}
		if err := st.Users.Delete(ctx, id); err != nil {
			return userLookupError(id, err)
		}
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return err
	}
	publishCommitted(ctx, s.publisher, s.log, appended)

	stillThere, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if stillThere {
		err := fmt.Errorf("%w: user %s still stored after delete", taskboard_errors.ErrConsistencyViolation, id)
		s.log.ErrorCtx(ctx, "delete left the user row behind", zap.String("user_id", id.String()), zap.Error(err))
		return err
	}

	s.log.DebugCtx(ctx, "user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserPersistenceService) Clear(ctx context.Context) error {
	var (
		ids      []uuid.UUID
		appended []event.Event
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		all, err := st.Users.GetAllForUpdate(ctx)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			return nil
		}

		ids = make([]uuid.UUID, 0, len(all))
		appended = make([]event.Event, 0, len(all))
		for _, u := range all {
			e := event.DeleteEventOf(u, noActor)
			if err := st.Events.Append(ctx, &e); err != nil {
				return taskboard_errors.NewStorageError("append delete event", err)
			}
			ids = append(ids, u.ID)
			appended = append(appended, e)
		}

		n, err := st.Users.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("%w: deleted %d of %d locked users", taskboard_errors.ErrConsistencyViolation, n, len(ids))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, taskboard_errors.ErrConsistencyViolation) {
			s.log.ErrorCtx(ctx, "clear rolled back", zap.Error(err))
		}
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	publishCommitted(ctx, s.publisher, s.log, appended)

	remaining, err := s.users.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if remaining > 0 {
		err := fmt.Errorf("%w: %d users still stored after clear", taskboard_errors.ErrConsistencyViolation, remaining)
		s.log.ErrorCtx(ctx, "clear left user rows behind", zap.Int64("remaining", remaining), zap.Error(err))
		return err
	}

	s.log.DebugCtx(ctx, "users cleared", zap.Int("count", len(ids)))
	return nil
}

func duplicateName(name string) error {
	return fmt.Errorf("%w: %q", taskboard_errors.ErrDuplicateName, name)
}

func userLookupError(id uuid.UUID, err error) error {
	if errors.Is(err, taskboard_errors.ErrNotFound) {
		return fmt.Errorf("%w: %s", taskboard_errors.ErrUserNotFound, id)
	}
	return taskboard_errors.NewStorageError("lookup user", err)
}
