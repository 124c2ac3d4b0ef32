package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/database"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
)

func newUserTestFixture(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)
	return repo, mock
}

func userColumns() []string {
	return []string{"id", "username", "password", "role"}
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns()).AddRow(u.ID, u.Username, u.PasswordHash, u.Role)
}

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash-abc", "owner").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u := &domain.User{Username: "alice", PasswordHash: "hash-abc", Role: "owner"}
	err := repo.Create(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, int64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash-abc", "owner").
		WillReturnError(fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	u := &domain.User{Username: "alice", PasswordHash: "hash-abc", Role: "owner"}
	err := repo.Create(context.Background(), u)
	require.Error(t, err)

	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	want := &domain.User{ID: 3, Username: "bob", PasswordHash: "hash-bob", Role: "customer"}

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+WHERE id =").
		WithArgs(int64(3)).
		WillReturnRows(userRow(want))

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 99)
	require.Error(t, err)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	want := &domain.User{ID: 3, Username: "bob", PasswordHash: "hash-bob", Role: "customer"}

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+WHERE username =").
		WithArgs("bob").
		WillReturnRows(userRow(want))

	got, err := repo.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+WHERE username =").
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByUsername(context.Background(), "nonexistent")
	require.Error(t, err)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows(userColumns()).
		AddRow(int64(1), "alice", "hash-a", "owner").
		AddRow(int64(2), "bob", "hash-b", "customer")

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+ORDER BY id ASC").
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_Empty(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("(?s)SELECT .+ FROM users\\s+ORDER BY id ASC").
		WillReturnRows(pgxmock.NewRows(userColumns()))

	users, err := repo.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
