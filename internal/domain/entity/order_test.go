package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
}

func TestOrder_CanCancel(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanCancel())
	assert.True(t, (&Order{Status: OrderStatusProcessing}).CanCancel())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanCancel())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanCancel())
}

func TestOrder_CanProgressTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		next OrderStatus
		want bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"processing to delivered", OrderStatusProcessing, OrderStatusDelivered, true},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"processing to pending", OrderStatusProcessing, OrderStatusPending, false},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, false},
		{"cancelled to processing", OrderStatusCancelled, OrderStatusProcessing, false},
		{"delivered to delivered", OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: tt.from}
			assert.Equal(t, tt.want, order.CanProgressTo(tt.next))
		})
	}
}

func TestOrder_CanRecordPayment(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanRecordPayment())
	assert.True(t, (&Order{Status: OrderStatusProcessing}).CanRecordPayment())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanRecordPayment())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanRecordPayment())
}
