package repository

import (
	"context"

	"taskboard/internal/domain/user"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	return translate("create user", res.Error)
}

func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return user.User{}, translate("get user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, translate("check user name", err)
	}
	return count > 0, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", u.ID).
		Update("name", u.Name)
	if res.Error != nil {
		return translate("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return taskboard_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&user.User{}, "id = ?", id)
	if res.Error != nil {
		return translate("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return taskboard_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return user.User{}, translate("lock user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetAllForUpdate(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, translate("lock users", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&user.User{}, "id IN ?", ids)
	if res.Error != nil {
		return 0, translate("delete users", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *PostgresUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, translate("check user", err)
	}
	return count > 0, nil
}

func (r *PostgresUserRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return 0, translate("count users", err)
	}
	return count, nil
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Count(&count).Error; err != nil {
		return 0, translate("count users", err)
	}
	return count, nil
}
