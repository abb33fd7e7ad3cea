package service

import "context"

// CheckoutRequest describes the single line item a checkout session is
// opened for. UnitAmount is in the processor's minor currency units.
type CheckoutRequest struct {
	OrderName  string
	Email      string
	UnitAmount int64
	OrderID    string
}

// CheckoutSession is the processor's view of a session, as much of it as
// the lifecycle layer needs. Completed sessions feed the lifecycle manager;
// the metadata carries the correlation keys set at creation time.
type CheckoutSession struct {
	ID            string
	TransactionID string
	AmountTotal   int64
	CustomerEmail string
	PaymentStatus string
	OrderID       string
	BookName      string
	URL           string
}

// Paid reports whether the processor marks the session as settled.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == "paid"
}

// PaymentGateway wraps the payment processor. It never mutates order or
// payment state; confirmation flows only hand verified session data to the
// lifecycle manager.
type PaymentGateway interface {
	// CreateCheckoutSession opens a hosted checkout flow and returns the
	// redirect session. Only the URL is meaningful on the create path.
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)

	// RetrieveSession fetches a session by id from the processor. This is
	// the authenticity check for the polling confirmation path: the caller
	// supplies only an identifier, never a payment status.
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ParseWebhookEvent authenticates a webhook payload against the
	// processor's signature header and returns the completed checkout
	// session it describes, or nil for event types this system ignores.
	ParseWebhookEvent(payload []byte, signatureHeader string) (*CheckoutSession, error)
}
