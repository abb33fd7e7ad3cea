package repository

import (
	"context"
	"errors"

	"readreach/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrOrderNotFound is returned when an order lookup matches no document.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Status/payment writes are single-document updates; callers that need
// lifecycle rules go through the lifecycle manager, never here directly.
type OrderRepository interface {
	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)

	// FindAll retrieves every order.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByEmail retrieves the orders placed by a purchaser.
	FindByEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// FindRecentByEmail retrieves the limit newest orders for a purchaser.
	FindRecentByEmail(ctx context.Context, email string, limit int64) ([]*entity.Order, error)

	// FindDeliveredByEmail retrieves a purchaser's delivered orders.
	FindDeliveredByEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// FindByLibrarian retrieves the orders routed to a librarian.
	FindByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Order, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus sets the status field of one order.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error

	// MarkPaid sets payment=paid and status in one document update.
	MarkPaid(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) error

	// DeleteByBookID removes every order referencing a book. Used by the
	// catalog-delete cascade; best effort, not atomic with the book delete.
	DeleteByBookID(ctx context.Context, bookID string) (int64, error)
}
