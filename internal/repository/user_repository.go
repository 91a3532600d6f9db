package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateName(ctx context.Context, id uint, name string) (*model.User, error)
}

type userRepository struct {
	store *Store[model.User]
	db    *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{store: NewStore[model.User](db), db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.store.Create(ctx, user)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.store.FindByID(ctx, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.store.FindOneMatching(ctx, map[string]any{"email": email})
}

// UpdateName mutates only the display name. Users are their own owners, so the
// generic owner-scoped update does not apply here.
func (r *userRepository) UpdateName(ctx context.Context, id uint, name string) (*model.User, error) {
	user, err := r.store.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	return r.store.FindByID(ctx, id)
}
