package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the state a fresh order starts in.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing means payment has arrived and fulfillment started.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusCancelled is a terminal state reached only by purchaser cancellation.
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusDelivered is the terminal fulfillment state.
	OrderStatusDelivered OrderStatus = "delivered"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCancelled, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

// PaymentState is the payment flag carried on an order.
type PaymentState string

const (
	// PaymentStateUnpaid means no completed payment references the order.
	PaymentStateUnpaid PaymentState = "unpaid"
	// PaymentStatePaid means a Payment record references the order.
	PaymentStatePaid PaymentState = "paid"
)

// Order is a purchase of a single book. It starts as pending/unpaid and is
// moved only through the lifecycle rules below.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookID         string             `bson:"bookId" json:"bookId"`
	BookName       string             `bson:"bookName,omitempty" json:"bookName,omitempty"`
	Email          string             `bson:"email" json:"email"`
	LibrarianEmail string             `bson:"librarian_email" json:"librarian_email"`
	Price          string             `bson:"price" json:"price"`
	Status         OrderStatus        `bson:"status" json:"status"`
	Payment        PaymentState       `bson:"payment" json:"payment"`
	TrackingID     string             `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// CanCancel reports whether the purchaser may still cancel the order.
// Delivered orders stay delivered; cancelling twice is rejected too.
func (o *Order) CanCancel() bool {
	return !o.Status.IsTerminal()
}

// CanProgressTo reports whether a librarian-driven move to next is legal.
// Fulfillment only moves forward: pending -> processing -> delivered.
// Cancellation is the purchaser's transition, never the librarian's.
func (o *Order) CanProgressTo(next OrderStatus) bool {
	switch {
	case o.Status == OrderStatusPending && next == OrderStatusProcessing:
		return true
	case o.Status == OrderStatusProcessing && next == OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// CanRecordPayment reports whether a completed payment may still move the
// order to processing/paid. A late payment event must not resurrect a
// cancelled order or touch a delivered one.
func (o *Order) CanRecordPayment() bool {
	return !o.Status.IsTerminal()
}
