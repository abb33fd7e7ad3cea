package repository

import (
	"context"
	"errors"

	"readreach/internal/domain/entity"
)

// ErrDuplicateTransaction is returned when an insert hits the unique index
// on transactionId. The lifecycle manager treats it as "already recorded",
// never as a failure.
var ErrDuplicateTransaction = errors.New("payment transaction already recorded")

// PaymentRepository defines the operations for payment records. Payments are
// insert-only: no update or delete exists on purpose.
type PaymentRepository interface {
	// FindByTransactionID retrieves a payment by processor transaction id.
	// Returns nil, nil when none exists.
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)

	// FindAll retrieves every payment record.
	FindAll(ctx context.Context) ([]*entity.Payment, error)

	// FindByEmail retrieves the payments made by a purchaser.
	FindByEmail(ctx context.Context, email string) ([]*entity.Payment, error)

	// Create inserts a payment record. Returns ErrDuplicateTransaction when
	// a record with the same transactionId already exists; the caller relies
	// on the store's unique index rather than a check-then-act read.
	Create(ctx context.Context, payment *entity.Payment) error
}
