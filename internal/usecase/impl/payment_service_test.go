package impl

import (
	"context"
	"testing"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/domain/service"
	mockRepo "readreach/internal/mocks/repository"
	mockSvc "readreach/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPaymentService(t *testing.T) (
	*mockRepo.MockPaymentRepository,
	*mockRepo.MockOrderRepository,
	*mockSvc.MockPaymentGateway,
	*mockSvc.MockEventPublisher,
	*paymentService,
) {
	mockPaymentRepo := mockRepo.NewMockPaymentRepository(t)
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewPaymentService(mockPaymentRepo, mockOrderRepo, mockGateway, mockPublisher, testLogger())

	return mockPaymentRepo, mockOrderRepo, mockGateway, mockPublisher, svc.(*paymentService)
}

func paidSession(orderID string) *service.CheckoutSession {
	return &service.CheckoutSession{
		ID:            "cs_test_123",
		TransactionID: "pi_test_456",
		AmountTotal:   1999,
		CustomerEmail: "reader@example.com",
		PaymentStatus: "paid",
		OrderID:       orderID,
		BookName:      "The Go Programming Language",
	}
}

func TestPaymentService_ConfirmSession_RecordsAndAdvancesOrder(t *testing.T) {
	mockPaymentRepo, mockOrderRepo, _, mockPublisher, svc := newPaymentService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()
	session := paidSession(oid.Hex())

	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Return(nil)

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{ID: oid, BookID: "book-1", Email: "reader@example.com", Status: entity.OrderStatusPending}, nil)

	mockOrderRepo.EXPECT().
		MarkPaid(ctx, oid, entity.OrderStatusProcessing).
		Return(nil)

	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	out, err := svc.ConfirmSession(ctx, session)
	require.NoError(t, err)
	assert.False(t, out.Duplicate)
	assert.True(t, out.OrderUpdated)
	require.NotNil(t, out.Payment)
	assert.Equal(t, "pi_test_456", out.Payment.TransactionID)
	assert.Equal(t, int64(1999), out.Payment.Amount)
}

func TestPaymentService_ConfirmSession_DuplicateIsIdempotent(t *testing.T) {
	mockPaymentRepo, _, _, _, svc := newPaymentService(t)

	ctx := context.Background()
	session := paidSession(primitive.NewObjectID().Hex())

	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Return(repository.ErrDuplicateTransaction)

	existing := &entity.Payment{TransactionID: "pi_test_456", Amount: 1999}
	mockPaymentRepo.EXPECT().
		FindByTransactionID(ctx, "pi_test_456").
		Return(existing, nil)

	out, err := svc.ConfirmSession(ctx, session)
	require.NoError(t, err)
	assert.True(t, out.Duplicate)
	assert.False(t, out.OrderUpdated)
	assert.Equal(t, existing, out.Payment)
}

func TestPaymentService_ConfirmSession_CancelledOrderStaysCancelled(t *testing.T) {
	mockPaymentRepo, mockOrderRepo, _, _, svc := newPaymentService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()
	session := paidSession(oid.Hex())

	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Return(nil)

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{ID: oid, Status: entity.OrderStatusCancelled}, nil)

	out, err := svc.ConfirmSession(ctx, session)
	require.NoError(t, err)
	assert.False(t, out.OrderUpdated)
	require.NotNil(t, out.Payment)
}

func TestPaymentService_ConfirmSession_UnpaidIsNoop(t *testing.T) {
	_, _, _, _, svc := newPaymentService(t)

	session := paidSession(primitive.NewObjectID().Hex())
	session.PaymentStatus = "unpaid"

	out, err := svc.ConfirmSession(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, out.Duplicate)
	assert.False(t, out.OrderUpdated)
	assert.Nil(t, out.Payment)
}

func TestPaymentService_ConfirmSession_SessionIDFallbackKey(t *testing.T) {
	mockPaymentRepo, _, _, _, svc := newPaymentService(t)

	ctx := context.Background()
	session := paidSession("")
	session.TransactionID = ""

	var recorded *entity.Payment
	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Run(func(_ context.Context, payment *entity.Payment) {
			recorded = payment
		}).
		Return(nil)

	out, err := svc.ConfirmSession(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, "cs_test_123", recorded.TransactionID)
	assert.False(t, out.OrderUpdated)
}

func TestPaymentService_ConfirmSession_MissingOrderIsTolerated(t *testing.T) {
	mockPaymentRepo, mockOrderRepo, _, _, svc := newPaymentService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()
	session := paidSession(oid.Hex())

	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Return(nil)

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(nil, repository.ErrOrderNotFound)

	out, err := svc.ConfirmSession(ctx, session)
	require.NoError(t, err)
	assert.False(t, out.OrderUpdated)
}

func TestPaymentService_ConfirmSessionByID(t *testing.T) {
	mockPaymentRepo, mockOrderRepo, mockGateway, mockPublisher, svc := newPaymentService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()
	session := paidSession(oid.Hex())

	mockGateway.EXPECT().
		RetrieveSession(ctx, "cs_test_123").
		Return(session, nil)

	mockPaymentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Payment")).
		Return(nil)

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{ID: oid, Status: entity.OrderStatusPending}, nil)

	mockOrderRepo.EXPECT().
		MarkPaid(ctx, oid, entity.OrderStatusProcessing).
		Return(nil)

	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	out, err := svc.ConfirmSessionByID(ctx, "cs_test_123")
	require.NoError(t, err)
	assert.True(t, out.OrderUpdated)
}

func TestPaymentService_ConfirmSessionByID_GatewayError(t *testing.T) {
	_, _, mockGateway, _, svc := newPaymentService(t)

	ctx := context.Background()

	mockGateway.EXPECT().
		RetrieveSession(ctx, "cs_test_123").
		Return(nil, errors.New("stripe unreachable"))

	_, err := svc.ConfirmSessionByID(ctx, "cs_test_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentGateway)
}

func TestPaymentService_HandleWebhookEvent_BadSignature(t *testing.T) {
	_, _, mockGateway, _, svc := newPaymentService(t)

	payload := []byte(`{"type":"checkout.session.completed"}`)

	mockGateway.EXPECT().
		ParseWebhookEvent(payload, "t=1,v1=bad").
		Return(nil, errors.New("signature mismatch"))

	_, err := svc.HandleWebhookEvent(context.Background(), payload, "t=1,v1=bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrWebhookSignature)
}

func TestPaymentService_HandleWebhookEvent_IgnoredType(t *testing.T) {
	_, _, mockGateway, _, svc := newPaymentService(t)

	payload := []byte(`{"type":"invoice.paid"}`)

	mockGateway.EXPECT().
		ParseWebhookEvent(payload, "t=1,v1=good").
		Return(nil, nil)

	out, err := svc.HandleWebhookEvent(context.Background(), payload, "t=1,v1=good")
	require.NoError(t, err)
	assert.Nil(t, out.Payment)
	assert.False(t, out.OrderUpdated)
}
