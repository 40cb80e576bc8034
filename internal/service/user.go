package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"identity-service/internal/models"
	"identity-service/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

type UserService interface {
	GetProfile(userID int64) (*models.User, error)
	UpdateProfile(userID int64, email, fullName, rank, role string) error
	ListUsers() ([]models.PublicUser, error)
	CountUsers() (int, error)
}

type userService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(userID int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user by id", zap.Int64("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateProfile replaces the mutable profile fields. Optional fields left
// empty by the caller overwrite the stored values with empty strings; this
// full-replace semantics matches the original system and is kept on purpose.
func (s *userService) UpdateProfile(userID int64, email, fullName, rank, role string) error {
	if email == "" {
		return ErrInvalidInput
	}

	err := s.repo.UpdateProfile(userID, email, fullName, rank, role)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailExists
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case err != nil:
		s.logger.Error("Failed to update profile", zap.Int64("id", userID), zap.Error(err))
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", zap.Int64("id", userID))
	return nil
}

func (s *userService) ListUsers() ([]models.PublicUser, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) CountUsers() (int, error) {
	count, err := s.repo.CountUsers()
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
