package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/domain/service"
	mockRepo "readreach/internal/mocks/repository"
	mockSvc "readreach/internal/mocks/service"
	"readreach/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderService_PlaceOrder(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()

	mockOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := svc.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		BookID:         "book-1",
		BookName:       "The Go Programming Language",
		Email:          "reader@example.com",
		LibrarianEmail: "librarian@example.com",
		Price:          "19.99",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStateUnpaid, order.Payment)
	assert.NotEmpty(t, order.TrackingID)
}

func TestOrderService_PlaceOrder_PublishFailureIsSwallowed(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()

	mockOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker unavailable"))

	_, err := svc.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		BookID: "book-1",
		Email:  "reader@example.com",
	})
	require.NoError(t, err)
}

func TestOrderService_CancelOrder_Pending(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{
			ID:     oid,
			BookID: "book-1",
			Email:  "reader@example.com",
			Status: entity.OrderStatusPending,
		}, nil)

	mockOrderRepo.EXPECT().
		UpdateStatus(ctx, oid, entity.OrderStatusCancelled).
		Return(nil)

	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := svc.CancelOrder(ctx, oid.Hex(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestOrderService_CancelOrder_DeliveredRejected(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{
			ID:     oid,
			Email:  "reader@example.com",
			Status: entity.OrderStatusDelivered,
		}, nil)

	_, err := svc.CancelOrder(ctx, oid.Hex(), "reader@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderTransition)
}

func TestOrderService_CancelOrder_CancelledTwiceRejected(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{
			ID:     oid,
			Email:  "reader@example.com",
			Status: entity.OrderStatusCancelled,
		}, nil)

	_, err := svc.CancelOrder(ctx, oid.Hex(), "reader@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderTransition)
}

func TestOrderService_CancelOrder_OtherPurchaserForbidden(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{
			ID:     oid,
			Email:  "owner@example.com",
			Status: entity.OrderStatusPending,
		}, nil)

	_, err := svc.CancelOrder(ctx, oid.Hex(), "intruder@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_CancelOrder_NotFound(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(nil, repository.ErrOrderNotFound)

	_, err := svc.CancelOrder(ctx, oid.Hex(), "reader@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_CancelOrder_MalformedID(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	_, err := svc.CancelOrder(context.Background(), "not-an-id", "reader@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidObjectID)
}

func TestOrderService_UpdateOrderStatus_Forward(t *testing.T) {
	tests := []struct {
		name string
		from entity.OrderStatus
		next entity.OrderStatus
	}{
		{"pending to processing", entity.OrderStatusPending, entity.OrderStatusProcessing},
		{"processing to delivered", entity.OrderStatusProcessing, entity.OrderStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockPublisher := mockSvc.NewMockEventPublisher(t)
			svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

			ctx := context.Background()
			oid := primitive.NewObjectID()

			mockOrderRepo.EXPECT().
				FindByID(ctx, oid).
				Return(&entity.Order{ID: oid, Status: tt.from}, nil)

			mockOrderRepo.EXPECT().
				UpdateStatus(ctx, oid, tt.next).
				Return(nil)

			mockPublisher.EXPECT().
				PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
				Return(nil)

			order, err := svc.UpdateOrderStatus(ctx, oid.Hex(), tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.next, order.Status)
		})
	}
}

func TestOrderService_UpdateOrderStatus_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from entity.OrderStatus
		next entity.OrderStatus
	}{
		{"backwards to pending", entity.OrderStatusProcessing, entity.OrderStatusPending},
		{"skip to delivered", entity.OrderStatusPending, entity.OrderStatusDelivered},
		{"out of cancelled", entity.OrderStatusCancelled, entity.OrderStatusProcessing},
		{"out of delivered", entity.OrderStatusDelivered, entity.OrderStatusProcessing},
		{"librarian cancellation", entity.OrderStatusPending, entity.OrderStatusCancelled},
		{"same status", entity.OrderStatusProcessing, entity.OrderStatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockPublisher := mockSvc.NewMockEventPublisher(t)
			svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

			ctx := context.Background()
			oid := primitive.NewObjectID()

			mockOrderRepo.EXPECT().
				FindByID(ctx, oid).
				Return(&entity.Order{ID: oid, Status: tt.from}, nil)

			_, err := svc.UpdateOrderStatus(ctx, oid.Hex(), tt.next)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrOrderTransition)
		})
	}
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	_, err := svc.UpdateOrderStatus(context.Background(), primitive.NewObjectID().Hex(), entity.OrderStatus("shipped"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderTransition)
}

func TestOrderService_UpdateOrderStatus_PublishedEventCarriesTransition(t *testing.T) {
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := NewOrderService(mockOrderRepo, mockPublisher, testLogger())

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockOrderRepo.EXPECT().
		FindByID(ctx, oid).
		Return(&entity.Order{ID: oid, BookID: "book-1", Email: "reader@example.com", Status: entity.OrderStatusPending}, nil)

	mockOrderRepo.EXPECT().
		UpdateStatus(ctx, oid, entity.OrderStatusProcessing).
		Return(nil)

	var published *service.OrderEvent
	mockPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(_ context.Context, event *service.OrderEvent) {
			published = event
		}).
		Return(nil)

	_, err := svc.UpdateOrderStatus(ctx, oid.Hex(), entity.OrderStatusProcessing)
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, service.OrderEventStatusUpdated, published.Type)
	assert.Equal(t, oid.Hex(), published.OrderID)
	assert.Equal(t, string(entity.OrderStatusProcessing), published.Status)
}
