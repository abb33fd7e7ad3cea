package service

import (
	"context"
)

// Order event types published on lifecycle transitions.
const (
	OrderEventCreated       = "order.created"
	OrderEventCancelled     = "order.cancelled"
	OrderEventStatusUpdated = "order.status_updated"
	OrderEventPaid          = "order.paid"
)

// OrderEvent represents one order lifecycle transition for downstream
// consumers (dashboards, mailers). Publishing is fire-and-forget: a failed
// publish is logged and never fails the request that caused it.
type OrderEvent struct {
	RequestID     string `json:"request_id,omitempty"` // For distributed tracing
	Type          string `json:"type"`
	OrderID       string `json:"order_id"`
	BookID        string `json:"book_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Status        string `json:"status,omitempty"`
	Payment       string `json:"payment,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
