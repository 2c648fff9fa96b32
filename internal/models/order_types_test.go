package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusProcessing},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusReceived, OrderStatusDelivered},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusProcessing},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	assert.Empty(t, AllowedTransitions(OrderStatusDelivered))
	assert.Empty(t, AllowedTransitions(OrderStatusReceived))
	assert.Empty(t, AllowedTransitions(OrderStatusCancelled))
}

func TestIsOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusReceived, OrderStatusCancelled} {
		assert.True(t, IsOrderStatus(s))
	}
	assert.False(t, IsOrderStatus("refunded"))
	assert.False(t, IsOrderStatus(""))
}

func TestOrderSubtotal(t *testing.T) {
	order := Order{Total: 5150, ShippingCost: 150}
	assert.Equal(t, 5000.0, order.Subtotal())
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Pending", StatusDisplay(OrderStatusPending))
	assert.Equal(t, "Shipped", StatusDisplay(OrderStatusShipped))
}
