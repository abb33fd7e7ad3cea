package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/domain/service"
	"readreach/internal/errors"
	"readreach/internal/usecase"

	"github.com/google/uuid"
)

// orderService implements the OrderUsecase interface. It is the only code
// path that mutates order state, so every transition rule is enforced here.
type orderService struct {
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// newTrackingID builds a human-quotable tracking reference: a base36
// timestamp plus a short random suffix.
func newTrackingID() string {
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])

	return strings.ToUpper(stamp) + "-" + suffix
}

// publish sends an order lifecycle event. Publishing is fire-and-forget:
// a failure is logged and never surfaces to the request that caused it.
func (srv *orderService) publish(ctx context.Context, event *service.OrderEvent) {
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish order event",
			"type", event.Type, "orderId", event.OrderID, "error", err)
	}
}

// PlaceOrder creates a pending, unpaid order with a fresh tracking id.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	order := &entity.Order{
		BookID:         input.BookID,
		BookName:       input.BookName,
		Email:          input.Email,
		LibrarianEmail: input.LibrarianEmail,
		Price:          input.Price,
		Status:         entity.OrderStatusPending,
		Payment:        entity.PaymentStateUnpaid,
		TrackingID:     newTrackingID(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.logger.Info("Placed order",
		"orderId", order.ID.Hex(), "bookId", order.BookID, "email", order.Email)

	srv.publish(ctx, &service.OrderEvent{
		Type:    service.OrderEventCreated,
		OrderID: order.ID.Hex(),
		BookID:  order.BookID,
		Email:   order.Email,
		Status:  string(order.Status),
		Payment: string(order.Payment),
	})

	return order, nil
}

// ListAll retrieves every order.
func (srv *orderService) ListAll(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListByEmail retrieves a purchaser's orders.
func (srv *orderService) ListByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by email")
	}

	return orders, nil
}

// ListRecent retrieves a purchaser's newest orders, capped at limit.
func (srv *orderService) ListRecent(ctx context.Context, email string, limit int64) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindRecentByEmail(ctx, email, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	return orders, nil
}

// ListDelivered retrieves a purchaser's delivered orders.
func (srv *orderService) ListDelivered(ctx context.Context, email string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindDeliveredByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivered orders")
	}

	return orders, nil
}

// ListByLibrarian retrieves the orders routed to one librarian.
func (srv *orderService) ListByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByLibrarian(ctx, librarianEmail)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list librarian orders")
	}

	return orders, nil
}

// findOrder loads an order, translating id and lookup failures.
func (srv *orderService) findOrder(ctx context.Context, id string) (*entity.Order, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	order, err := srv.orderRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "find order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// CancelOrder moves a purchaser's own order to cancelled. Orders already
// delivered or cancelled are refused with a conflict; someone else's order
// is refused before its state is considered.
func (srv *orderService) CancelOrder(ctx context.Context, id string, callerEmail string) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Email != callerEmail {
		return nil, domainerrors.ErrForbidden.WrapMessage("order belongs to another purchaser")
	}

	if !order.CanCancel() {
		return nil, domainerrors.ErrOrderTransition.WrapMessage(
			"cannot cancel an order in state " + string(order.Status))
	}

	if err := srv.orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}
	order.Status = entity.OrderStatusCancelled

	srv.logger.Info("Cancelled order", "orderId", id, "email", callerEmail)

	srv.publish(ctx, &service.OrderEvent{
		Type:    service.OrderEventCancelled,
		OrderID: id,
		BookID:  order.BookID,
		Email:   order.Email,
		Status:  string(order.Status),
	})

	return order, nil
}

// UpdateOrderStatus applies a librarian-driven fulfillment transition.
// Fulfillment only moves forward; cancellation is never reachable here.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id string, next entity.OrderStatus) (*entity.Order, error) {
	if !next.IsValid() {
		return nil, domainerrors.ErrOrderTransition.WrapMessage("unknown order status " + string(next))
	}

	order, err := srv.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanProgressTo(next) {
		return nil, domainerrors.ErrOrderTransition.WrapMessage(
			"cannot move order from " + string(order.Status) + " to " + string(next))
	}

	if err := srv.orderRepo.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	order.Status = next

	srv.logger.Info("Updated order status", "orderId", id, "status", next)

	srv.publish(ctx, &service.OrderEvent{
		Type:    service.OrderEventStatusUpdated,
		OrderID: id,
		BookID:  order.BookID,
		Email:   order.Email,
		Status:  string(order.Status),
		Payment: string(order.Payment),
	})

	return order, nil
}
