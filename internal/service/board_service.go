package service

import (
	"context"
	"fmt"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// BoardService exposes board operations for an authenticated owner.
type BoardService interface {
	CreateBoard(ctx context.Context, ownerID uint, name string) (*model.Board, error)
	ListBoards(ctx context.Context, ownerID uint) ([]model.BoardWithCount, error)
	// GetBoard returns the board and its tasks.
	GetBoard(ctx context.Context, id, ownerID uint) (*model.Board, []model.Task, error)
	UpdateBoard(ctx context.Context, id, ownerID uint, name *string) (*model.Board, error)
	// DeleteBoard removes the board; its tasks go with it via the schema cascade.
	DeleteBoard(ctx context.Context, id, ownerID uint) error
}

type boardService struct {
	boards repository.BoardRepository
	tasks  repository.TaskRepository
}

// NewBoardService builds a BoardService.
func NewBoardService(boards repository.BoardRepository, tasks repository.TaskRepository) BoardService {
	return &boardService{boards: boards, tasks: tasks}
}

func (s *boardService) CreateBoard(ctx context.Context, ownerID uint, name string) (*model.Board, error) {
	board := &model.Board{
		UserID: ownerID,
		Name:   name,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

func (s *boardService) ListBoards(ctx context.Context, ownerID uint) ([]model.BoardWithCount, error) {
	return s.boards.ListWithTaskCounts(ctx, ownerID)
}

func (s *boardService) GetBoard(ctx context.Context, id, ownerID uint) (*model.Board, []model.Task, error) {
	board, err := s.boards.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("find board: %w", err)
	}
	if board == nil {
		return nil, nil, apperrors.ErrNotFound
	}

	tasks, err := s.tasks.List(ctx, ownerID, &id, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("list board tasks: %w", err)
	}
	return board, tasks, nil
}

func (s *boardService) UpdateBoard(ctx context.Context, id, ownerID uint, name *string) (*model.Board, error) {
	// Partial update: an empty payload leaves the board untouched.
	if name == nil {
		board, err := s.boards.FindOwned(ctx, id, ownerID)
		if err != nil {
			return nil, fmt.Errorf("find board: %w", err)
		}
		if board == nil {
			return nil, apperrors.ErrNotFound
		}
		return board, nil
	}

	board, err := s.boards.Update(ctx, id, ownerID, map[string]any{"name": *name})
	if err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	if board == nil {
		return nil, apperrors.ErrNotFound
	}
	return board, nil
}

func (s *boardService) DeleteBoard(ctx context.Context, id, ownerID uint) error {
	board, err := s.boards.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if board == nil {
		return apperrors.ErrNotFound
	}
	return nil
}
