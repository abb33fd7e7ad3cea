package usecase

import (
	"context"
)

// CreateCheckoutInput is the hosted-checkout creation payload.
type CreateCheckoutInput struct {
	OrderName string `json:"orderName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Price     string `json:"price" validate:"required"`

	// BookID is the storefront's correlation key for the session. It rides
	// in the session metadata under orderId and comes back on completion.
	BookID string `json:"bookId"`
}

// CreateCheckoutOutput carries the hosted payment page handle.
type CreateCheckoutOutput struct {
	SessionID string `json:"id"`
	URL       string `json:"url"`
}

// CheckoutUsecase defines the interface for starting a hosted payment.
type CheckoutUsecase interface {
	// CreateSession validates the price, converts it to minor currency
	// units and opens a hosted checkout session with the payment processor.
	CreateSession(ctx context.Context, input *CreateCheckoutInput) (*CreateCheckoutOutput, error)

	// CheckoutQR renders the session's hosted payment URL as a PNG QR code
	// so a purchaser can finish paying on another device.
	CheckoutQR(ctx context.Context, url string) ([]byte, error)
}
