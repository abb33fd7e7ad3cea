package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	domainerrors "readreach/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestDevVerifier_Verify_Success(t *testing.T) {
	verifier := NewDevVerifier(testSecret, slog.Default())

	now := time.Now()
	signed := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":   "firebase-uid-1",
		"email": "a@x.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})

	identity, err := verifier.Verify(context.Background(), "Bearer "+signed)
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", identity.Subject)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.WithinDuration(t, now.Add(time.Hour), identity.ExpiresAt, time.Second)
}

func TestDevVerifier_Verify_MissingHeader(t *testing.T) {
	verifier := NewDevVerifier(testSecret, slog.Default())

	_, err := verifier.Verify(context.Background(), "")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrMissingCredential.ErrorCode(), appErr.ErrorCode())
}

func TestDevVerifier_Verify_WrongScheme(t *testing.T) {
	verifier := NewDevVerifier(testSecret, slog.Default())

	_, err := verifier.Verify(context.Background(), "Basic abc123")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrMissingCredential.ErrorCode(), appErr.ErrorCode())
}

func TestDevVerifier_Verify_ExpiredToken(t *testing.T) {
	verifier := NewDevVerifier(testSecret, slog.Default())

	signed := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":   "firebase-uid-1",
		"email": "a@x.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	_, err := verifier.Verify(context.Background(), "Bearer "+signed)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredential.ErrorCode(), appErr.ErrorCode())
}

func TestDevVerifier_Verify_WrongSecret(t *testing.T) {
	verifier := NewDevVerifier(testSecret, slog.Default())

	signed := signTestToken(t, "another-secret", jwt.MapClaims{
		"sub": "firebase-uid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), "Bearer "+signed)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredential.ErrorCode(), appErr.ErrorCode())
}
