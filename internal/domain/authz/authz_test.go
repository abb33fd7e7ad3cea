package authz

import (
	"net/url"
	"testing"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_RoleAllowed(t *testing.T) {
	user := &entity.User{Email: "admin@example.com", Role: entity.RoleAdmin}
	policy := Policy{Roles: entity.Roles{entity.RoleAdmin}}

	err := Decide(user, policy, url.Values{})
	require.NoError(t, err)
}

func TestDecide_RoleDenied(t *testing.T) {
	user := &entity.User{Email: "reader@example.com", Role: entity.RoleUser}
	policy := Policy{Roles: entity.Roles{entity.RoleAdmin}}

	err := Decide(user, policy, url.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestDecide_RoleCheckedBeforeOwnership(t *testing.T) {
	// A failing ownership predicate must not run when the role already
	// denies, so the same forbidden answer leaks nothing about scope.
	called := false
	user := &entity.User{Email: "reader@example.com", Role: entity.RoleUser}
	policy := Policy{
		Roles: entity.Roles{entity.RoleAdmin},
		Ownership: func(*entity.User, url.Values) bool {
			called = true

			return true
		},
	}

	err := Decide(user, policy, url.Values{})
	require.Error(t, err)
	assert.False(t, called)
}

func TestDecide_OwnershipDenied(t *testing.T) {
	user := &entity.User{Email: "reader@example.com", Role: entity.RoleUser}
	policy := Policy{
		Roles:     entity.Roles{entity.RoleUser},
		Ownership: OwnEmailQuery,
	}

	query := url.Values{"email": []string{"victim@example.com"}}
	err := Decide(user, policy, query)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOwnEmailQuery(t *testing.T) {
	user := &entity.User{Email: "reader@example.com", Role: entity.RoleUser}

	tests := []struct {
		name  string
		query url.Values
		want  bool
	}{
		{"absent email", url.Values{}, true},
		{"own email", url.Values{"email": []string{"reader@example.com"}}, true},
		{"foreign email", url.Values{"email": []string{"victim@example.com"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnEmailQuery(user, tt.query))
		})
	}
}
