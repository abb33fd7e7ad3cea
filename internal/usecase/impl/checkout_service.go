package impl

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/service"
	"readreach/internal/errors"
	"readreach/internal/usecase"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	gateway service.PaymentGateway
	qrcode  service.QRCodeService
	logger  *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	gateway service.PaymentGateway,
	qrcode service.QRCodeService,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		gateway: gateway,
		qrcode:  qrcode,
		logger:  logger,
	}
}

// toMinorUnits converts a decimal price string to minor currency units.
// "19.99" becomes 1999; fraction digits past the second are truncated.
// Non-numeric, negative and zero amounts are rejected.
func toMinorUnits(price string) (int64, error) {
	s := strings.TrimSpace(price)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, errors.Wrap(domainerrors.ErrInvalidAmount, "parse price")
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || major > (math.MaxInt64-99)/100 {
		return 0, errors.Wrap(domainerrors.ErrInvalidAmount, "parse price")
	}

	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	minor, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, errors.Wrap(domainerrors.ErrInvalidAmount, "parse price")
	}

	amount := major*100 + minor
	if amount <= 0 {
		return 0, errors.Wrap(domainerrors.ErrInvalidAmount, "parse price")
	}

	return amount, nil
}

// CreateSession validates the price and opens a hosted checkout session.
// Validation happens before any processor call so a malformed amount never
// leaves the process.
func (srv *checkoutService) CreateSession(ctx context.Context, input *usecase.CreateCheckoutInput) (*usecase.CreateCheckoutOutput, error) {
	amount, err := toMinorUnits(input.Price)
	if err != nil {
		return nil, err
	}

	session, err := srv.gateway.CreateCheckoutSession(ctx, &service.CheckoutRequest{
		OrderName:  input.OrderName,
		Email:      input.Email,
		UnitAmount: amount,
		OrderID:    input.BookID,
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPaymentGateway, "create checkout session")
	}

	srv.logger.Info("Created checkout session",
		"sessionId", session.ID, "amount", amount, "email", input.Email)

	return &usecase.CreateCheckoutOutput{SessionID: session.ID, URL: session.URL}, nil
}

// CheckoutQR renders a hosted checkout URL as a PNG QR code.
func (srv *checkoutService) CheckoutQR(_ context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("url is required")
	}

	png, err := srv.qrcode.GenerateCheckoutQR(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render checkout QR")
	}

	return png, nil
}
