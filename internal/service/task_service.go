package service

import (
	"context"
	"fmt"
	"time"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	BoardID     uint
	Name        string
	Description *string
	Status      model.TaskStatus
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Status      *model.TaskStatus
	DueDate     *time.Time
	BoardID     *uint
}

// TaskService exposes task operations for an authenticated owner.
type TaskService interface {
	CreateTask(ctx context.Context, owner *model.User, in CreateTaskInput) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID uint, boardID *uint, status *model.TaskStatus) ([]model.Task, error)
	GetTask(ctx context.Context, id, ownerID uint) (*model.Task, error)
	UpdateTask(ctx context.Context, id, ownerID uint, in UpdateTaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id, ownerID uint, status model.TaskStatus) (*model.Task, error)
	DeleteTask(ctx context.Context, id, ownerID uint) error
}

type taskService struct {
	tasks  repository.TaskRepository
	boards repository.BoardRepository
}

// NewTaskService builds a TaskService.
func NewTaskService(tasks repository.TaskRepository, boards repository.BoardRepository) TaskService {
	return &taskService{tasks: tasks, boards: boards}
}

// CreateTask attaches a task to one of the owner's boards. A board owned by
// someone else surfaces as ErrNotFound, same as a missing board. The owner's
// email is denormalized onto the task at creation time.
func (s *taskService) CreateTask(ctx context.Context, owner *model.User, in CreateTaskInput) (*model.Task, error) {
	status := in.Status
	if status == "" {
		status = model.StatusPlanned
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	board, err := s.boards.FindOwned(ctx, in.BoardID, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	if board == nil {
		return nil, apperrors.ErrNotFound
	}

	task := &model.Task{
		UserID:      owner.ID,
		BoardID:     in.BoardID,
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		Email:       owner.Email,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, ownerID uint, boardID *uint, status *model.TaskStatus) ([]model.Task, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.tasks.List(ctx, ownerID, boardID, status)
}

func (s *taskService) GetTask(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.tasks.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

// UpdateTask applies the supplied fields only. Moving a task to another board
// re-checks that the target board belongs to the same owner.
func (s *taskService) UpdateTask(ctx context.Context, id, ownerID uint, in UpdateTaskInput) (*model.Task, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		fields["status"] = *in.Status
	}
	if in.DueDate != nil {
		fields["due_date"] = *in.DueDate
	}
	if in.BoardID != nil {
		board, err := s.boards.FindOwned(ctx, *in.BoardID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("find board: %w", err)
		}
		if board == nil {
			return nil, apperrors.ErrNotFound
		}
		fields["board_id"] = *in.BoardID
	}

	if len(fields) == 0 {
		return s.GetTask(ctx, id, ownerID)
	}

	task, err := s.tasks.Update(ctx, id, ownerID, fields)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

// UpdateStatus sets only the status field. Any enumerated value may be set
// from any other.
func (s *taskService) UpdateStatus(ctx context.Context, id, ownerID uint, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	task, err := s.tasks.Update(ctx, id, ownerID, map[string]any{"status": status})
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id, ownerID uint) error {
	task, err := s.tasks.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if task == nil {
		return apperrors.ErrNotFound
	}
	return nil
}
