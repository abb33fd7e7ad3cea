// Package middleware contains the HTTP authentication and authorization
// gateway. Handlers behind it can assume a resolved application user.
package middleware

import (
	"readreach/internal/domain/authz"
	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/domain/service"
	"readreach/internal/errors"

	"github.com/labstack/echo/v4"
)

// keyCurrentUser is the echo context key the resolved account is stored
// under.
const keyCurrentUser = "currentUser"

// AuthMiddleware validates bearer credentials and enforces route policies.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, userRepo: userRepo}
}

// Authenticate validates the Authorization header against the identity
// provider and resolves the caller's application account. The account, not
// the raw token, is what authorization decisions run against.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		identity, err := m.verifier.Verify(ctx, c.Request().Header.Get("Authorization"))
		if err != nil {
			return err
		}

		user, err := m.userRepo.FindByEmail(ctx, identity.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnknownIdentity.WrapMessage("authenticate " + identity.Email)
			}

			return errors.Wrap(err, "failed to resolve account")
		}

		c.Set(keyCurrentUser, user)

		return next(c)
	}
}

// Authorize evaluates a static route policy against the resolved user. It
// must run after Authenticate.
func (m *AuthMiddleware) Authorize(policy authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domainerrors.ErrUnknownIdentity.WrapMessage("no resolved user on request")
			}

			if err := authz.Decide(user, policy, c.QueryParams()); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// CurrentUser returns the account Authenticate stored on the request, or
// nil outside the authenticated chain.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(keyCurrentUser).(*entity.User); ok {
		return user
	}

	return nil
}
