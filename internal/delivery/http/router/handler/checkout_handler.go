package handler

import (
	"io"
	"log/slog"
	"net/http"

	"readreach/internal/delivery/http/response"
	"readreach/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// stripeSignatureHeader carries the webhook payload signature.
const stripeSignatureHeader = "Stripe-Signature"

// CheckoutHandler holds dependencies for hosted-checkout handlers.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	paymentUC  usecase.PaymentUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkoutUC usecase.CheckoutUsecase, paymentUC usecase.PaymentUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC, paymentUC: paymentUC, logger: logger}
}

// CreateSession handles hosted checkout creation.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var input *usecase.CreateCheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.checkoutUC.CreateSession(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, "")
}

// Webhook handles processor completion notifications. The body is read raw
// because the signature covers the exact bytes on the wire.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_PAYLOAD", "Could not read webhook payload")
	}

	out, err := h.paymentUC.HandleWebhookEvent(c.Request().Context(), payload, c.Request().Header.Get(stripeSignatureHeader))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, "")
}

// QR renders a checkout URL as a PNG for cross-device payment.
func (h *CheckoutHandler) QR(c echo.Context) error {
	png, err := h.checkoutUC.CheckoutQR(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
