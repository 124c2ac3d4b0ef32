package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
)

func TestListUsers_AdminSucceeds(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("List", mock.Anything).Return([]domain.User{
		{ID: 1, Username: "alice", Role: "owner"},
		{ID: 2, Username: "bob", Role: "customer"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, 99, "root", domain.RoleAdmin))
	rr := f.do(req)

	require.Equal(t, http.StatusOK, rr.Code)

	users := decodeBody[[]domain.User](t, rr)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	f.userRepo.AssertExpectations(t)
}

func TestListUsers_NonAdminForbidden(t *testing.T) {
	f := newRouterFixture(t)

	for _, role := range []string{domain.RoleOwner, domain.RoleCustomer} {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, 7, "alice", role))
		rr := f.do(req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "role %s", role)
	}

	f.userRepo.AssertNotCalled(t, "List")
}

func TestListUsers_NoToken(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/users", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	f.userRepo.AssertNotCalled(t, "List")
}

func TestGetUser_AdminSucceeds(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Username: "bob", Role: "customer"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/2", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, 99, "root", domain.RoleAdmin))
	rr := f.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "bob", decodeBody[domain.User](t, rr).Username)
}

func TestGetUser_NotFound(t *testing.T) {
	f := newRouterFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/users/99", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, 99, "root", domain.RoleAdmin))
	rr := f.do(req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
