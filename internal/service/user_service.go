package service

import (
	"context"
	"fmt"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	// UpdateProfile mutates only the display name.
	UpdateProfile(ctx context.Context, id uint, name string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, name string) (*model.User, error) {
	user, err := s.users.UpdateName(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}
