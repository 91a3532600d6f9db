package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository defines task persistence operations, all owner scoped.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindOwned(ctx context.Context, id, ownerID uint) (*model.Task, error)
	List(ctx context.Context, ownerID uint, boardID *uint, status *model.TaskStatus) ([]model.Task, error)
	Update(ctx context.Context, id, ownerID uint, fields map[string]any) (*model.Task, error)
	Delete(ctx context.Context, id, ownerID uint) (*model.Task, error)
}

type taskRepository struct {
	store *Store[model.Task]
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{store: NewStore[model.Task](db)}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.store.Create(ctx, task)
}

func (r *taskRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	return r.store.FindOneMatching(ctx, map[string]any{"id": id, "user_id": ownerID})
}

// List returns the user's tasks, optionally narrowed by board and/or status.
func (r *taskRepository) List(ctx context.Context, ownerID uint, boardID *uint, status *model.TaskStatus) ([]model.Task, error) {
	filter := map[string]any{"user_id": ownerID}
	if boardID != nil {
		filter["board_id"] = *boardID
	}
	if status != nil {
		filter["status"] = *status
	}
	return r.store.ListMatching(ctx, filter)
}

func (r *taskRepository) Update(ctx context.Context, id, ownerID uint, fields map[string]any) (*model.Task, error) {
	return r.store.Update(ctx, id, ownerID, fields)
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	return r.store.Delete(ctx, id, ownerID)
}
