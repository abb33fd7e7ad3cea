// Package service defines interfaces for external collaborators: the
// identity provider, the payment processor, event publishing and rendering
// helpers. Implementations live under internal/infra.
package service

import (
	"context"

	"readreach/internal/domain/entity"
)

// TokenVerifier validates a raw Authorization header value against the
// identity provider and produces the verified identity for the request.
//
// A missing header or a scheme other than "Bearer" fails with
// domainerrors.ErrMissingCredential before any provider call is made; a
// token the provider rejects fails with domainerrors.ErrInvalidCredential.
type TokenVerifier interface {
	Verify(ctx context.Context, rawHeader string) (*entity.VerifiedIdentity, error)
}
