// Package payment implements the PaymentGateway against Stripe hosted
// checkout. Creation, retrieval-by-id and webhook signature verification
// live here; order/payment state never changes in this package.
package payment

import (
	"context"
	"encoding/json"
	"log/slog"

	"readreach/config"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const eventCheckoutSessionCompleted = "checkout.session.completed"

type stripeGateway struct {
	webhookSecret string
	clientDomain  string
	currency      string
	logger        *slog.Logger
}

// NewStripeGateway creates the Stripe-backed PaymentGateway.
func NewStripeGateway(cfg *config.Config, logger *slog.Logger) service.PaymentGateway {
	stripe.Key = cfg.Stripe.SecretKey

	return &stripeGateway{
		webhookSecret: cfg.Stripe.WebhookSecret,
		clientDomain:  cfg.Stripe.ClientDomain,
		currency:      cfg.Stripe.Currency,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a hosted checkout flow for one line item.
// The order id and book name ride along as session metadata so the
// completion event can be correlated back to the order.
func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req *service.CheckoutRequest) (*service.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(req.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.OrderName),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.clientDomain + "/dashboard/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.clientDomain + "/cancel"),
	}
	params.AddMetadata("orderId", req.OrderID)
	params.AddMetadata("bookName", req.OrderName)

	sess, err := checkoutsession.New(params)
	if err != nil {
		g.logger.Error("Stripe checkout session creation failed", slog.Any("error", err))

		return nil, domainerrors.ErrPaymentGateway.WrapMessage("create checkout session")
	}

	return fromStripeSession(sess), nil
}

// RetrieveSession fetches the session from Stripe. The caller supplies only
// the identifier; the payment status comes from Stripe's own record.
func (g *stripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	sess, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		g.logger.Error("Stripe session retrieval failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrPaymentGateway.WrapMessage("retrieve checkout session")
	}

	return fromStripeSession(sess), nil
}

// ParseWebhookEvent authenticates the payload against the endpoint secret.
// Signature verification is the authentication mechanism for the webhook
// endpoint; an unverifiable payload is rejected outright.
func (g *stripeGateway) ParseWebhookEvent(payload []byte, signatureHeader string) (*service.CheckoutSession, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, domainerrors.ErrWebhookSignature.WrapMessage("stripe signature verification failed")
	}

	if event.Type != eventCheckoutSessionCompleted {
		g.logger.Info("Stripe webhook ignored (unhandled type)", slog.String("type", string(event.Type)))

		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, errors.Wrap(err, "decode checkout.session")
	}

	return fromStripeSession(&sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *service.CheckoutSession {
	out := &service.CheckoutSession{
		ID:            sess.ID,
		AmountTotal:   sess.AmountTotal,
		CustomerEmail: sess.CustomerEmail,
		PaymentStatus: string(sess.PaymentStatus),
		URL:           sess.URL,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if sess.Metadata != nil {
		out.OrderID = sess.Metadata["orderId"]
		out.BookName = sess.Metadata["bookName"]
	}

	return out
}
