package queries

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrQuoteFareQueryIsNotConstructed = errors.New(
	"QuoteFareQuery must be created via NewQuoteFareQuery constructor",
)

// QuoteFareQuery prices a trip before it is ordered. Either a distance or both points are needed.
type QuoteFareQuery struct {
	trip services.TripAttributes

	guard guard.ConstructorGuard
}

func NewQuoteFareQuery(orderType string, distanceKm *float64, pickup, dropoff *kernel.GeoPoint) (QuoteFareQuery, error) {
	trip := services.TripAttributes{DistanceKm: distanceKm, Pickup: pickup, Dropoff: dropoff}
	if strings.TrimSpace(orderType) != "" {
		t, err := order.ParseType(orderType)
		if err != nil {
			return QuoteFareQuery{}, err
		}
		trip.Type = t
	}
	return QuoteFareQuery{trip: trip, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteFareQuery) Validate() error {
	return q.guard.Validate(ErrQuoteFareQueryIsNotConstructed)
}

func (q QuoteFareQuery) Trip() services.TripAttributes {
	return q.trip
}

type QuoteFareQueryHandler struct {
	strategy services.FareStrategy
}

func NewQuoteFareQueryHandler(strategy services.FareStrategy) QuoteFareQueryHandler {
	return QuoteFareQueryHandler{strategy: strategy}
}

func (h QuoteFareQueryHandler) Handle(_ context.Context, query QuoteFareQuery) (decimal.Decimal, error) {
	if err := query.Validate(); err != nil {
		return decimal.Zero, err
	}
	return h.strategy.Compute(query.Trip())
}
