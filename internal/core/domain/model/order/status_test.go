package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from order.Status
		to   order.Status
		want bool
	}{
		{order.Pending, order.Confirmed, true},
		{order.Pending, order.Cancelled, true},
		{order.Pending, order.Picked, false},
		{order.Confirmed, order.Picking, true},
		{order.Confirmed, order.Pending, false},
		{order.Picking, order.Picked, true},
		{order.Picked, order.OutForDelivery, true},
		{order.OutForDelivery, order.Delivered, true},
		{order.OutForDelivery, order.Cancelled, true},
		{order.OutForDelivery, order.Picked, false},
		{order.Delivered, order.Cancelled, false},
		{order.Cancelled, order.Pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_NoSelfLoops(t *testing.T) {
	for _, s := range order.Statuses() {
		assert.False(t, s.CanTransitionTo(s), s.String())
	}
}

func TestStatus_TerminalHaveNoEdges(t *testing.T) {
	for _, from := range order.Statuses() {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range order.Statuses() {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	active := map[order.Status]bool{order.Picking: true, order.Picked: true, order.OutForDelivery: true}
	for _, s := range order.Statuses() {
		assert.Equal(t, active[s], s.IsActive(), s.String())
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus(" out_for_delivery ")
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, s)

	_, err = order.ParseStatus("ALL")
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	p, err := order.ParsePaymentStatus("refunded")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentRefunded, p)

	_, err = order.ParsePaymentStatus("")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
