package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"readreach/internal/domain/authz"
	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	mockRepo "readreach/internal/mocks/repository"
	mockSvc "readreach/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEchoContext(t *testing.T, target string, header http.Header) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_ResolvesAccount(t *testing.T) {
	mockVerifier := mockSvc.NewMockTokenVerifier(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(mockVerifier, mockUserRepo)

	c, _ := newEchoContext(t, "/orders", http.Header{"Authorization": []string{"Bearer good-token"}})

	mockVerifier.EXPECT().
		Verify(mock.Anything, "Bearer good-token").
		Return(&entity.VerifiedIdentity{Subject: "uid-1", Email: "reader@example.com"}, nil)

	stored := &entity.User{Email: "reader@example.com", Role: entity.RoleUser}
	mockUserRepo.EXPECT().
		FindByEmail(mock.Anything, "reader@example.com").
		Return(stored, nil)

	err := m.Authenticate(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, stored, CurrentUser(c))
}

func TestAuthenticate_InvalidCredential(t *testing.T) {
	mockVerifier := mockSvc.NewMockTokenVerifier(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(mockVerifier, mockUserRepo)

	c, _ := newEchoContext(t, "/orders", http.Header{"Authorization": []string{"Bearer forged"}})

	mockVerifier.EXPECT().
		Verify(mock.Anything, "Bearer forged").
		Return(nil, domainerrors.ErrInvalidCredential)

	err := m.Authenticate(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
	mockUserRepo.AssertNotCalled(t, "FindByEmail")
}

func TestAuthenticate_UnknownIdentity(t *testing.T) {
	mockVerifier := mockSvc.NewMockTokenVerifier(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(mockVerifier, mockUserRepo)

	c, _ := newEchoContext(t, "/orders", http.Header{"Authorization": []string{"Bearer good-token"}})

	mockVerifier.EXPECT().
		Verify(mock.Anything, "Bearer good-token").
		Return(&entity.VerifiedIdentity{Subject: "uid-9", Email: "stranger@example.com"}, nil)

	mockUserRepo.EXPECT().
		FindByEmail(mock.Anything, "stranger@example.com").
		Return(nil, repository.ErrUserNotFound)

	err := m.Authenticate(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownIdentity)
}

func TestAuthorize_RoleMatrix(t *testing.T) {
	adminOnly := authz.Policy{Roles: entity.Roles{entity.RoleAdmin}}

	tests := []struct {
		name    string
		role    entity.Role
		allowed bool
	}{
		{"admin passes", entity.RoleAdmin, true},
		{"librarian denied", entity.RoleLibrarian, false},
		{"user denied", entity.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockVerifier := mockSvc.NewMockTokenVerifier(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			m := NewAuthMiddleware(mockVerifier, mockUserRepo)

			c, _ := newEchoContext(t, "/books", nil)
			c.Set(keyCurrentUser, &entity.User{Email: "caller@example.com", Role: tt.role})

			err := m.Authorize(adminOnly)(okHandler)(c)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorize_OwnershipScope(t *testing.T) {
	ownEmail := authz.Policy{
		Roles:     entity.Roles{entity.RoleUser},
		Ownership: authz.OwnEmailQuery,
	}

	mockVerifier := mockSvc.NewMockTokenVerifier(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(mockVerifier, mockUserRepo)

	c, _ := newEchoContext(t, "/orders?email=victim@example.com", nil)
	c.Set(keyCurrentUser, &entity.User{Email: "reader@example.com", Role: entity.RoleUser})

	err := m.Authorize(ownEmail)(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAuthorize_WithoutAuthenticate(t *testing.T) {
	mockVerifier := mockSvc.NewMockTokenVerifier(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(mockVerifier, mockUserRepo)

	c, _ := newEchoContext(t, "/books", nil)

	err := m.Authorize(authz.Policy{Roles: entity.Roles{entity.RoleAdmin}})(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownIdentity)
}

func TestErrorMiddleware_MapsAppErrorStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing credential", domainerrors.ErrMissingCredential, http.StatusUnauthorized},
		{"invalid credential", domainerrors.ErrInvalidCredential, http.StatusForbidden},
		{"forbidden", domainerrors.ErrForbidden, http.StatusForbidden},
		{"order transition", domainerrors.ErrOrderTransition, http.StatusConflict},
		{"unhandled", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newEchoContext(t, "/orders", nil)

			NewErrorMiddleware(logger).HandleHTTPError(tt.err, c)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
