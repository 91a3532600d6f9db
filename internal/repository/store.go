package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store provides owner-scoped CRUD over a single entity type. Mutating
// operations that take an owner id filter by id AND owner so a wrong owner and
// a missing row are indistinguishable to the caller. Each call commits as one
// transaction; concurrency control is left to the database.
type Store[T any] struct {
	db *gorm.DB
}

// NewStore builds a GORM-backed store for T.
func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// FindByID returns the entity or nil when no row exists.
func (s *Store[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return &entity, nil
}

// FindOneMatching returns the first entity matching the equality filter, or nil.
func (s *Store[T]) FindOneMatching(ctx context.Context, filter map[string]any) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Where(filter).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one: %w", err)
	}
	return &entity, nil
}

// ListMatching returns all entities matching the equality filter. Order is
// unspecified unless the caller sorts.
func (s *Store[T]) ListMatching(ctx context.Context, filter map[string]any) ([]T, error) {
	var entities []T
	query := s.db.WithContext(ctx)
	if len(filter) > 0 {
		query = query.Where(filter)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entities, nil
}

// Create inserts the entity; generated id and server-assigned timestamps are
// populated on return.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Update applies fields to the row matching both id and owner and returns the
// refreshed entity, or nil when no row matched. Existence is checked first
// rather than through RowsAffected, which MySQL reports as zero for no-op
// writes. Unrelated rows are never touched.
func (s *Store[T]) Update(ctx context.Context, id, ownerID uint, fields map[string]any) (*T, error) {
	entity, err := s.FindOneMatching(ctx, map[string]any{"id": id, "user_id": ownerID})
	if err != nil || entity == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Delete fetches then removes the row matching both id and owner, returning
// what was removed, or nil when nothing matched.
func (s *Store[T]) Delete(ctx context.Context, id, ownerID uint) (*T, error) {
	entity, err := s.FindOneMatching(ctx, map[string]any{"id": id, "user_id": ownerID})
	if err != nil || entity == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(new(T)).Error; err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	return entity, nil
}
