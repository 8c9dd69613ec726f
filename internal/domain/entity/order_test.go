package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.OrderPending, entity.OrderConfirmed, true},
		{entity.OrderConfirmed, entity.OrderShipped, true},
		{entity.OrderShipped, entity.OrderDelivered, true},
		{entity.OrderPending, entity.OrderShipped, false},
		{entity.OrderConfirmed, entity.OrderPending, false},
		{entity.OrderShipped, entity.OrderCancelled, true},
		{entity.OrderDelivered, entity.OrderCancelled, false},
		{entity.OrderCancelled, entity.OrderPending, false},
		{entity.OrderPending, "perdido", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, entity.CanTransition(tc.from, tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestOrder_HasReceipt(t *testing.T) {
	assert.False(t, (&entity.Order{Status: entity.OrderPending}).HasReceipt())
	assert.True(t, (&entity.Order{Status: entity.OrderConfirmed}).HasReceipt())
	assert.False(t, (&entity.Order{Status: entity.OrderCancelled}).HasReceipt())
}
