package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/auth"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/event"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/repository"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
)

// AuthService implements registration and login.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *auth.JWTManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Username string
	Password string
}

// Register creates a new user account with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}
	if !domain.IsValidRole(input.Role) {
		return nil, apperrors.InvalidInput("role must be one of: customer, owner, admin")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Publish registration event; a broker outage must not fail the request.
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)

	return user, nil
}

// Login verifies the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if input.Username == "" {
		return "", apperrors.InvalidInput("username is required")
	}
	if input.Password == "" {
		return "", apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		// Only a missing row is a 404; a store failure must surface as a 500.
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NotFound("user", input.Username)
		}
		return "", apperrors.Wrap(err, "get user by username")
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		return "", apperrors.Unauthorized("invalid password")
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}
