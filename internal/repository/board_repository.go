package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// BoardRepository defines board persistence operations. Every read and write
// that takes an owner id filters by it; a board owned by someone else behaves
// exactly like a missing board.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	FindOwned(ctx context.Context, id, ownerID uint) (*model.Board, error)
	ListWithTaskCounts(ctx context.Context, ownerID uint) ([]model.BoardWithCount, error)
	Update(ctx context.Context, id, ownerID uint, fields map[string]any) (*model.Board, error)
	Delete(ctx context.Context, id, ownerID uint) (*model.Board, error)
}

type boardRepository struct {
	store *Store[model.Board]
	db    *gorm.DB
}

// NewBoardRepository builds a GORM-backed repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{store: NewStore[model.Board](db), db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.store.Create(ctx, board)
}

func (r *boardRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.Board, error) {
	return r.store.FindOneMatching(ctx, map[string]any{"id": id, "user_id": ownerID})
}

// ListWithTaskCounts returns every board owned by the user together with the
// number of its tasks, in a single query. Boards without tasks count 0.
func (r *boardRepository) ListWithTaskCounts(ctx context.Context, ownerID uint) ([]model.BoardWithCount, error) {
	var boards []model.BoardWithCount
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Select("boards.*, COUNT(tasks.id) AS tasks_count").
		Joins("LEFT JOIN tasks ON tasks.board_id = boards.id").
		Where("boards.user_id = ?", ownerID).
		Group("boards.id").
		Order("boards.id").
		Scan(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards with counts: %w", err)
	}
	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, id, ownerID uint, fields map[string]any) (*model.Board, error) {
	return r.store.Update(ctx, id, ownerID, fields)
}

func (r *boardRepository) Delete(ctx context.Context, id, ownerID uint) (*model.Board, error) {
	return r.store.Delete(ctx, id, ownerID)
}
