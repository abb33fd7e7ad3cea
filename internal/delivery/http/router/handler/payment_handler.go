package handler

import (
	"log/slog"
	"net/http"

	"readreach/internal/delivery/http/response"
	"readreach/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment record handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

// ListAll handles the admin payment ledger.
func (h *PaymentHandler) ListAll(c echo.Context) error {
	payments, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payments, "")
}

// ListByEmail handles a purchaser's own payment history.
func (h *PaymentHandler) ListByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email = CurrentUserEmail(c)
	}

	payments, err := h.uc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payments, "")
}

// Status handles the client-driven confirmation fallback: the storefront
// hands back the session id from the success redirect and the processor is
// asked for the settled state.
func (h *PaymentHandler) Status(c echo.Context) error {
	out, err := h.uc.ConfirmSessionByID(c.Request().Context(), c.Param("sessionId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, "")
}
