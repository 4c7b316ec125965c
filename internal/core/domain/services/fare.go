package services

import (
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TripAttributes are the inputs a fare is computed from. When DistanceKm is nil it is
// derived from Pickup and Dropoff.
type TripAttributes struct {
	Type       order.Type
	DistanceKm *float64
	Pickup     *kernel.GeoPoint
	Dropoff    *kernel.GeoPoint
}

// FareStrategy computes the price of a trip.
type FareStrategy interface {
	Compute(trip TripAttributes) (decimal.Decimal, error)
}

// BaseDistanceFare prices a trip as base + perKm * distance, rounded to two places.
type BaseDistanceFare struct {
	base  decimal.Decimal
	perKm decimal.Decimal
}

var _ FareStrategy = BaseDistanceFare{}

func NewBaseDistanceFare(base, perKm decimal.Decimal) (BaseDistanceFare, error) {
	if !base.IsPositive() {
		return BaseDistanceFare{}, errs.NewValueIsInvalidErrorWithCause("base fare", fmt.Errorf("%s is not greater than 0", base))
	}
	if perKm.IsNegative() {
		return BaseDistanceFare{}, errs.NewValueIsInvalidErrorWithCause("per km fare", fmt.Errorf("%s is negative", perKm))
	}
	return BaseDistanceFare{base: base, perKm: perKm}, nil
}

func (f BaseDistanceFare) Base() decimal.Decimal {
	return f.base
}

func (f BaseDistanceFare) PerKm() decimal.Decimal {
	return f.perKm
}

func (f BaseDistanceFare) Compute(trip TripAttributes) (decimal.Decimal, error) {
	distance, err := trip.distance()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.base.Add(f.perKm.Mul(decimal.NewFromFloat(distance))).Round(2), nil
}

func (t TripAttributes) distance() (float64, error) {
	if t.DistanceKm != nil {
		if math.IsNaN(*t.DistanceKm) || math.IsInf(*t.DistanceKm, 0) {
			return 0, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is not a finite number", *t.DistanceKm))
		}
		if *t.DistanceKm < 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is negative", *t.DistanceKm))
		}
		return *t.DistanceKm, nil
	}
	if t.Pickup == nil || t.Dropoff == nil {
		return 0, errs.NewValueIsRequiredError("distance")
	}
	return t.Pickup.DistanceKm(*t.Dropoff), nil
}
