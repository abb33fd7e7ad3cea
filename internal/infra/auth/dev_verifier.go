package auth

import (
	"context"
	"log/slog"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

type devVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewDevVerifier creates a TokenVerifier for local development and tests:
// HS256 tokens signed with a shared secret, carrying the same sub/email
// claims the identity provider would. Selected only when Firebase is not
// configured.
func NewDevVerifier(secret string, logger *slog.Logger) service.TokenVerifier {
	return &devVerifier{
		secret: []byte(secret),
		logger: logger,
	}
}

// Verify validates the Authorization header against the shared secret.
func (v *devVerifier) Verify(_ context.Context, rawHeader string) (*entity.VerifiedIdentity, error) {
	tokenString, err := bearerToken(rawHeader)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerrors.ErrInvalidCredential.WrapMessage("unexpected signing method")
		}

		return v.secret, nil
	})
	if err != nil || !token.Valid {
		v.logger.Warn("Dev token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredential.WrapMessage("dev token rejected")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("unexpected claim set")
	}

	identity := &entity.VerifiedIdentity{}
	if sub, err := claims.GetSubject(); err == nil {
		identity.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}

	return identity, nil
}
