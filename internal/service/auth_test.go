package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/auth"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/event"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
	pkgkafka "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/kafka"
)

// --- Mock UserRepository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer points at no real broker; publish failures are logged and
// swallowed, matching production behavior during a broker outage.
func newTestProducer(logger *slog.Logger) *event.Producer {
	cfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(cfg, logger), logger)
}

func newTestAuthService(repo *mockUserRepository) *AuthService {
	logger := newTestLogger()
	jwtManager := auth.NewJWTManager("auth-service-test-secret-0123456789abcdef", time.Hour)
	return NewAuthService(repo, jwtManager, newTestProducer(logger), logger)
}

// --- Register ---

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "s3cret-password",
		Role:     "owner",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "owner", user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)
	assert.True(t, auth.CheckPassword("s3cret-password", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty username", RegisterInput{Password: "pw", Role: "customer"}},
		{"empty password", RegisterInput{Username: "alice", Role: "customer"}},
		{"empty role", RegisterInput{Username: "alice", Password: "pw"}},
		{"unknown role", RegisterInput{Username: "alice", Password: "pw", Role: "superuser"}},
		{"guest role is not registrable", RegisterInput{Username: "alice", Password: "pw", Role: "guest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(ctx, tt.input)
			require.Error(t, err)

			assert.Nil(t, user)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "expected ErrInvalidInput, got: %v", err)
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "username", "alice"))

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "pw",
		Role:     "customer",
	})
	require.Error(t, err)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	repo.AssertExpectations(t)
}

// --- Login ---

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	repo.On("GetByUsername", ctx, "alice").Return(&domain.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: hash,
		Role:         "owner",
	}, nil)

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-password"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The token carries the stored identity, not anything caller-supplied.
	jwtManager := auth.NewJWTManager("auth-service-test-secret-0123456789abcdef", time.Hour)
	claims, err := jwtManager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "owner", claims.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	token, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "pw"})
	require.Error(t, err)

	assert.Empty(t, token)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	repo.AssertExpectations(t)
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "alice").Return(nil, errors.New("connection refused"))

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw"})
	require.Error(t, err)

	// A database outage is not an unknown user.
	assert.Empty(t, token)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))
	repo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	repo.On("GetByUsername", ctx, "alice").Return(&domain.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: hash,
		Role:         "owner",
	}, nil)

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})
	require.Error(t, err)

	assert.Empty(t, token)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	repo.AssertExpectations(t)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Password: "pw"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.Login(ctx, LoginInput{Username: "alice"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	repo.AssertNotCalled(t, "GetByUsername")
}
