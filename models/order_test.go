package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range OrderStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("returned").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("Pending").Valid(), "statuses are case sensitive")
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusShipped, true},
		{StatusProcessing, StatusDelivered, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusDelivered, StatusDelivered, true},
		{StatusProcessing, StatusPending, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, OrderStatus("lost"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAllowedPredecessors(t *testing.T) {
	assert.ElementsMatch(t,
		[]OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusCancelled},
		AllowedPredecessors(StatusCancelled))
	assert.ElementsMatch(t,
		[]OrderStatus{StatusPending},
		AllowedPredecessors(StatusPending))
	assert.ElementsMatch(t,
		[]OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered},
		AllowedPredecessors(StatusDelivered))
}
