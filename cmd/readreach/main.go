package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"readreach/config"
	"readreach/internal/delivery"
	"readreach/internal/delivery/http"
	custommiddleware "readreach/internal/delivery/http/middleware"
	"readreach/internal/delivery/http/router/handler"
	deliverymiddleware "readreach/internal/delivery/middleware"
	"readreach/internal/domain/service"
	"readreach/internal/infra/auth"
	logs "readreach/internal/infra/log"
	"readreach/internal/infra/payment"
	"readreach/internal/infra/persistence/mongodb"
	"readreach/internal/infra/pubsub"
	"readreach/internal/infra/qrcode"
	"readreach/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		mongodb.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongodb.NewUserRepository,
			mongodb.NewBookRepository,
			mongodb.NewOrderRepository,
			mongodb.NewPaymentRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newTokenVerifier,
			newQRCodeService,
			payment.NewStripeGateway,
			pubsub.NewEventPublisher,
		),
	)
}

// newTokenVerifier picks the identity provider: Firebase when configured,
// otherwise a local HMAC verifier for development and tests.
func newTokenVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.TokenVerifier, error) {
	if cfg.Firebase != nil && cfg.Firebase.CredentialsPath != "" {
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase.CredentialsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firebase verifier: %w", err)
		}

		return verifier, nil
	}

	if cfg.Auth == nil || cfg.Auth.DevSecret == "" {
		return nil, fmt.Errorf("no identity provider configured: set firebase.credentialsPath or auth.devSecret")
	}

	logger.Warn("Using development token verifier; do not run this in production")

	return auth.NewDevVerifier(cfg.Auth.DevSecret, logger), nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewBookService,
			impl.NewOrderService,
			impl.NewPaymentService,
			impl.NewCheckoutService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			custommiddleware.NewAuthMiddleware,
			custommiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewBookHandler,
			handler.NewUserHandler,
			handler.NewOrderHandler,
			handler.NewPaymentHandler,
			handler.NewCheckoutHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
