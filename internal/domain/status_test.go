package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusLabelRoundTrip(t *testing.T) {
	for _, label := range []string{"pending", "approved", "ordered", "received", "cancelled"} {
		status, ok := ParseOrderStatus(label)
		assert.True(t, ok, label)
		assert.Equal(t, label, OrderStatusLabel(status))
	}

	_, ok := ParseOrderStatus("shipped")
	assert.False(t, ok)
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to int
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusOrdered, false},
		{OrderStatusApproved, OrderStatusOrdered, true},
		{OrderStatusOrdered, OrderStatusReceived, true},
		{OrderStatusReceived, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransitionOrderStatus(tt.from, tt.to),
			"%s -> %s", OrderStatusLabel(tt.from), OrderStatusLabel(tt.to))
	}
}
