package auth

import (
	"context"
	"log/slog"
	"time"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type firebaseVerifier struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewFirebaseVerifier creates a TokenVerifier backed by the Firebase Auth
// admin SDK. Signature and claim validation happen inside VerifyIDToken; no
// database round trip to the provider is made per call beyond that.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string, logger *slog.Logger) (service.TokenVerifier, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{
		client: client,
		logger: logger,
	}, nil
}

// Verify validates the Authorization header against Firebase and produces
// the request's verified identity.
func (v *firebaseVerifier) Verify(ctx context.Context, rawHeader string) (*entity.VerifiedIdentity, error) {
	token, err := bearerToken(rawHeader)
	if err != nil {
		return nil, err
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		v.logger.Warn("Firebase token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredential.WrapMessage("firebase rejected the id token")
	}

	email, _ := decoded.Claims["email"].(string)

	return &entity.VerifiedIdentity{
		Subject:   decoded.UID,
		Email:     email,
		IssuedAt:  time.Unix(decoded.IssuedAt, 0),
		ExpiresAt: time.Unix(decoded.Expires, 0),
	}, nil
}
