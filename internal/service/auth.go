package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"identity-service/internal/crypto"
	"identity-service/internal/models"
	"identity-service/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("missing required field")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegistrationNotifier receives an out-of-band alert after each successful
// registration.
type RegistrationNotifier interface {
	UserRegistered(username, email string)
}

type AuthService interface {
	Register(username, email, password, fullName, rank, role string) (*models.User, error)
	Login(username, password string) (string, *models.User, error)
}

type authService struct {
	repo     repository.UserRepository
	tokens   *TokenService
	notifier RegistrationNotifier
	logger   *zap.Logger
}

func NewAuthService(repo repository.UserRepository, tokens *TokenService, notifier RegistrationNotifier, logger *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates a new account. There is no separate existence check to
// race: the store rejects duplicate usernames and emails in the same
// statement as the insert.
func (s *authService) Register(username, email, password, fullName, rank, role string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Rank:         rank,
		Role:         role,
	}

	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", user.Username), zap.Int64("id", user.ID))

	if s.notifier != nil {
		s.notifier.UserRegistered(user.Username, user.Email)
	}

	return user, nil
}

// Login authenticates the credentials and issues a bearer token. An unknown
// username and a wrong password produce the same error, so the response does
// not reveal whether the account exists.
func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, time.Now())
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))

	return tokenString, user, nil
}
