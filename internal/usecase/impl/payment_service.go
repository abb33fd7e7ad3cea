package impl

import (
	"context"
	"log/slog"
	"time"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/domain/service"
	"readreach/internal/errors"
	"readreach/internal/usecase"
)

// paymentService implements the PaymentUsecase interface. Recording a
// completed checkout is idempotent end to end: the unique transaction index
// absorbs replays and the order update is skipped for terminal orders.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	gateway     service.PaymentGateway
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	gateway service.PaymentGateway,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		publisher:   publisher,
		logger:      logger,
	}
}

// ListAll retrieves every payment record.
func (srv *paymentService) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return payments, nil
}

// ListByEmail retrieves a purchaser's payment records.
func (srv *paymentService) ListByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments by email")
	}

	return payments, nil
}

// ConfirmSession records a completed checkout session. Unpaid sessions are
// a no-op; replays of an already-recorded transaction report Duplicate and
// change nothing.
func (srv *paymentService) ConfirmSession(ctx context.Context, session *service.CheckoutSession) (*usecase.ConfirmPaymentOutput, error) {
	out := &usecase.ConfirmPaymentOutput{}

	if session == nil || !session.Paid() {
		return out, nil
	}

	// Sessions settled without a payment intent still get a stable
	// idempotency key: the session id itself.
	transactionID := session.TransactionID
	if transactionID == "" {
		transactionID = session.ID
	}

	payment := &entity.Payment{
		TransactionID: transactionID,
		Amount:        session.AmountTotal,
		BookName:      session.BookName,
		Email:         session.CustomerEmail,
		CreatedAt:     time.Now().UTC(),
	}

	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			srv.logger.Info("Checkout session already recorded", "transactionId", transactionID)
			out.Duplicate = true

			existing, findErr := srv.paymentRepo.FindByTransactionID(ctx, transactionID)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to load recorded payment")
			}
			out.Payment = existing

			return out, nil
		}

		return nil, errors.Wrap(err, "failed to record payment")
	}
	out.Payment = payment

	srv.logger.Info("Recorded payment",
		"transactionId", transactionID, "amount", payment.Amount, "email", payment.Email)

	updated, err := srv.advanceOrder(ctx, session.OrderID, transactionID)
	if err != nil {
		return nil, err
	}
	out.OrderUpdated = updated

	return out, nil
}

// advanceOrder moves the referenced order to processing/paid, unless the
// order is already terminal. A cancelled order stays cancelled and a
// delivered order stays delivered; the late payment is kept on record only.
func (srv *paymentService) advanceOrder(ctx context.Context, orderID, transactionID string) (bool, error) {
	if orderID == "" {
		return false, nil
	}

	oid, err := parseObjectID(orderID)
	if err != nil {
		srv.logger.Warn("Checkout session carries malformed order id", "orderId", orderID)

		return false, nil
	}

	order, err := srv.orderRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			srv.logger.Warn("Checkout session references missing order", "orderId", orderID)

			return false, nil
		}

		return false, errors.Wrap(err, "failed to find order for payment")
	}

	if !order.CanRecordPayment() {
		srv.logger.Info("Skipped order update for terminal order",
			"orderId", orderID, "status", order.Status)

		return false, nil
	}

	if err := srv.orderRepo.MarkPaid(ctx, oid, entity.OrderStatusProcessing); err != nil {
		return false, errors.Wrap(err, "failed to mark order paid")
	}

	if pubErr := srv.publisher.PublishOrderEvent(ctx, &service.OrderEvent{
		Type:          service.OrderEventPaid,
		OrderID:       orderID,
		BookID:        order.BookID,
		Email:         order.Email,
		Status:        string(entity.OrderStatusProcessing),
		Payment:       string(entity.PaymentStatePaid),
		TransactionID: transactionID,
	}); pubErr != nil {
		srv.logger.Warn("Failed to publish order paid event", "orderId", orderID, "error", pubErr)
	}

	return true, nil
}

// ConfirmSessionByID pulls the session from the processor and records it if
// paid. The caller supplies only an identifier; the settled amount and
// status come from the processor, never from the client.
func (srv *paymentService) ConfirmSessionByID(ctx context.Context, sessionID string) (*usecase.ConfirmPaymentOutput, error) {
	session, err := srv.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPaymentGateway, "retrieve checkout session")
	}

	return srv.ConfirmSession(ctx, session)
}

// HandleWebhookEvent authenticates and records a processor webhook
// delivery. Event types this system ignores are acknowledged and dropped.
func (srv *paymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) (*usecase.ConfirmPaymentOutput, error) {
	session, err := srv.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrWebhookSignature, "parse webhook event")
	}
	if session == nil {
		return &usecase.ConfirmPaymentOutput{}, nil
	}

	return srv.ConfirmSession(ctx, session)
}
