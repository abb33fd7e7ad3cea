package usecase

import (
	"context"

	"readreach/internal/domain/entity"
	"readreach/internal/domain/service"
)

// ConfirmPaymentOutput reports what recording a completed checkout did.
// Both flags false means the session was not paid and nothing happened.
type ConfirmPaymentOutput struct {
	Payment *entity.Payment `json:"payment,omitempty"`
	// Duplicate is set when the transaction had already been recorded by an
	// earlier delivery of the same event.
	Duplicate bool `json:"duplicate"`
	// OrderUpdated is set when the referenced order moved to processing.
	// It stays false for duplicates and for orders already terminal.
	OrderUpdated bool `json:"orderUpdated"`
}

// PaymentUsecase defines the interface for payment recording use cases.
type PaymentUsecase interface {
	// ListAll retrieves every payment record.
	ListAll(ctx context.Context) ([]*entity.Payment, error)

	// ListByEmail retrieves a purchaser's payment records.
	ListByEmail(ctx context.Context, email string) ([]*entity.Payment, error)

	// ConfirmSession records a completed checkout session: it inserts the
	// payment record and advances the referenced order to processing/paid.
	// Safe to call any number of times for the same session.
	ConfirmSession(ctx context.Context, session *service.CheckoutSession) (*ConfirmPaymentOutput, error)

	// ConfirmSessionByID pulls the session from the payment processor and,
	// if it is paid, runs ConfirmSession on it. This is the client-driven
	// fallback for lost webhook deliveries.
	ConfirmSessionByID(ctx context.Context, sessionID string) (*ConfirmPaymentOutput, error)

	// HandleWebhookEvent verifies and records a processor webhook delivery.
	// Event types other than checkout completion are acknowledged and
	// dropped.
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) (*ConfirmPaymentOutput, error)
}
