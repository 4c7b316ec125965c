package order_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	for _, status := range order.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
			assert.NoError(t, status.Validate())
		})
	}

	_, err := order.ParseStatus("delivered")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, "on_the_way", order.OnTheWay.String())
	assert.Equal(t, "unknown", order.Status(99).String())
	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(99).Validate())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:    {order.Accepted, order.Cancelled},
		order.Accepted:   {order.OnTheWay, order.Cancelled},
		order.OnTheWay:   {order.PickedUp},
		order.PickedUp:   {order.InProgress},
		order.InProgress: {order.Completed, order.Cancelled},
		order.Completed:  nil,
		order.Cancelled:  nil,
	}

	for from, targets := range allowed {
		for _, to := range order.AllStatuses() {
			want := false
			for _, target := range targets {
				if target == to {
					want = true
				}
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))
			})
		}
		assert.ElementsMatch(t, targets, from.AllowedTransitions())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, status := range order.AllStatuses() {
		want := status == order.Completed || status == order.Cancelled
		assert.Equal(t, want, status.IsTerminal(), status.String())
	}
}

func TestStatus_ValidateDriver(t *testing.T) {
	tests := []struct {
		status    order.Status
		hasDriver bool
		wantErr   bool
	}{
		{order.Pending, false, false},
		{order.Pending, true, true},
		{order.Accepted, true, false},
		{order.Accepted, false, true},
		{order.InProgress, true, false},
		{order.Completed, true, false},
		{order.Completed, false, true},
		{order.Cancelled, false, false},
		{order.Cancelled, true, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s driver=%t", tt.status, tt.hasDriver), func(t *testing.T) {
			err := tt.status.ValidateDriver(tt.hasDriver)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Driver is on the way to pickup location", order.StatusMessage(order.OnTheWay))
	assert.Equal(t, "Order has been cancelled", order.StatusMessage(order.Cancelled))
	assert.Equal(t, order.StatusUpdatedMessage, order.StatusMessage(order.Unknown))
}
