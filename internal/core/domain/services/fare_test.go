package services_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFare(t *testing.T) services.BaseDistanceFare {
	t.Helper()
	f, err := services.NewBaseDistanceFare(decimal.RequireFromString("1.00"), decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	return f
}

func ptr[T any](v T) *T {
	return &v
}

func TestBaseDistanceFare_Compute(t *testing.T) {
	fare := newFare(t)

	tests := []struct {
		name     string
		distance float64
		want     string
	}{
		{name: "zero distance is base fare", distance: 0, want: "1.00"},
		{name: "ten km", distance: 10, want: "6.00"},
		{name: "rounds to two places", distance: 3.333, want: "2.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fare.Compute(services.TripAttributes{DistanceKm: ptr(tt.distance)})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
			assert.True(t, got.IsPositive())
		})
	}
}

func TestBaseDistanceFare_Compute_NegativeDistance(t *testing.T) {
	_, err := newFare(t).Compute(services.TripAttributes{DistanceKm: ptr(-1.0)})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBaseDistanceFare_Compute_NonFiniteDistance(t *testing.T) {
	fare := newFare(t)

	for _, distance := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			_, err := fare.Compute(services.TripAttributes{DistanceKm: ptr(distance)})
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, distance)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestBaseDistanceFare_Compute_DerivesDistanceFromPoints(t *testing.T) {
	pickup, _ := kernel.NewGeoPoint(0, 0)
	dropoff, _ := kernel.NewGeoPoint(0, 1)

	got, err := newFare(t).Compute(services.TripAttributes{Pickup: &pickup, Dropoff: &dropoff})

	require.NoError(t, err)
	// 1.00 + 0.5 * 111.19
	assert.Equal(t, "56.60", got.StringFixed(2))

	_, err = newFare(t).Compute(services.TripAttributes{Pickup: &pickup})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewBaseDistanceFare(t *testing.T) {
	_, err := services.NewBaseDistanceFare(decimal.Zero, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = services.NewBaseDistanceFare(decimal.NewFromInt(1), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
