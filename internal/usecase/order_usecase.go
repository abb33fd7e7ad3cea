package usecase

import (
	"context"

	"readreach/internal/domain/entity"
)

// PlaceOrderInput is the order-placement payload.
type PlaceOrderInput struct {
	BookID         string `json:"bookId" validate:"required"`
	BookName       string `json:"bookName"`
	Email          string `json:"email" validate:"required,email"`
	LibrarianEmail string `json:"librarian_email"`
	Price          string `json:"price"`
}

// OrderUsecase defines the interface for order lifecycle use cases. All
// state changes funnel through it so the transition rules live in exactly
// one place.
type OrderUsecase interface {
	// PlaceOrder creates a pending, unpaid order with a fresh tracking id.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// ListAll retrieves every order.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// ListByEmail retrieves a purchaser's orders.
	ListByEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// ListRecent retrieves a purchaser's newest orders, capped at limit.
	ListRecent(ctx context.Context, email string, limit int64) ([]*entity.Order, error)

	// ListDelivered retrieves a purchaser's delivered orders.
	ListDelivered(ctx context.Context, email string) ([]*entity.Order, error)

	// ListByLibrarian retrieves the orders routed to one librarian.
	ListByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Order, error)

	// CancelOrder moves a purchaser's own order to cancelled. It refuses
	// orders in a terminal state and orders belonging to someone else.
	CancelOrder(ctx context.Context, id string, callerEmail string) (*entity.Order, error)

	// UpdateOrderStatus applies a librarian-driven fulfillment transition.
	// Only the forward moves pending->processing and processing->delivered
	// are accepted.
	UpdateOrderStatus(ctx context.Context, id string, next entity.OrderStatus) (*entity.Order, error)
}
