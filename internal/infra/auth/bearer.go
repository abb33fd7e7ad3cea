// Package auth implements the token verifiers: Firebase for production and
// an HS256 verifier for local development and tests.
package auth

import (
	"strings"

	domainerrors "readreach/internal/domain/errors"
)

// bearerToken extracts the token from an Authorization header value. The
// header must carry the Bearer scheme; anything else is rejected before the
// identity provider is consulted.
func bearerToken(rawHeader string) (string, error) {
	if rawHeader == "" {
		return "", domainerrors.ErrMissingCredential.WrapMessage("no authorization header")
	}

	token := strings.TrimPrefix(rawHeader, "Bearer ")
	if token == rawHeader || token == "" {
		return "", domainerrors.ErrMissingCredential.WrapMessage("authorization header is not a bearer credential")
	}

	return token, nil
}
