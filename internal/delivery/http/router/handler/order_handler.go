package handler

import (
	"log/slog"
	"net/http"

	"readreach/internal/delivery/http/response"
	"readreach/internal/domain/entity"
	"readreach/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Dashboard strip sizes for the public order widgets.
const (
	recentOrdersLimit = 5
	threeOrdersLimit  = 3
)

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// Place handles order placement.
func (h *OrderHandler) Place(c echo.Context) error {
	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// ListAll handles the admin order listing.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListByEmail handles a purchaser's own order listing.
func (h *OrderHandler) ListByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email = CurrentUserEmail(c)
	}

	orders, err := h.uc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Recent handles the dashboard's recent-orders strip.
func (h *OrderHandler) Recent(c echo.Context) error {
	orders, err := h.uc.ListRecent(c.Request().Context(), c.QueryParam("email"), recentOrdersLimit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Three handles the compact three-order widget.
func (h *OrderHandler) Three(c echo.Context) error {
	orders, err := h.uc.ListRecent(c.Request().Context(), c.QueryParam("email"), threeOrdersLimit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Delivered handles the delivered-orders history widget.
func (h *OrderHandler) Delivered(c echo.Context) error {
	orders, err := h.uc.ListDelivered(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListByLibrarian handles a librarian's routed-orders listing.
func (h *OrderHandler) ListByLibrarian(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email = CurrentUserEmail(c)
	}

	orders, err := h.uc.ListByLibrarian(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Cancel handles purchaser cancellation of their own order.
func (h *OrderHandler) Cancel(c echo.Context) error {
	order, err := h.uc.CancelOrder(c.Request().Context(), c.Param("orderId"), CurrentUserEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled")
}

// orderStatusInput is the fulfillment transition payload.
type orderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles librarian fulfillment transitions.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var input *orderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), c.Param("orderId"), entity.OrderStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}
