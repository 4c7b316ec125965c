package services

import (
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const (
	DefaultRadiusKm = 10.0
	MinRadiusKm     = 0.1
	MaxRadiusKm     = 50.0
)

// Match is a pending order annotated with its pickup distance from the driver.
// DistanceKm is nil when no radius filter was applied.
type Match struct {
	Order      *order.Order
	DistanceKm *float64
}

// OrderMatcher is a domain service connecting pending orders to drivers.
//
// Business rules:
//   - a driver sees pending orders of their own region only (case-insensitive)
//   - with a radius filter, orders without pickup coordinates are skipped
//   - acceptance requires the driver role and a region
//
// Example usage:
//
//	matcher := services.NewOrderMatcher()
//	radius, err := services.NormalizeRadius(req.RadiusKm)
//	matches := matcher.WithinRadius(pending, driverLocation, radius)
type OrderMatcher struct{}

func NewOrderMatcher() OrderMatcher {
	return OrderMatcher{}
}

// NormalizeRadius applies the default radius when none is given and enforces its bounds.
func NormalizeRadius(radiusKm *float64) (float64, error) {
	if radiusKm == nil {
		return DefaultRadiusKm, nil
	}
	if *radiusKm < MinRadiusKm || *radiusKm > MaxRadiusKm {
		return 0, errs.NewValueIsOutOfRangeError("radius", *radiusKm, MinRadiusKm, MaxRadiusKm)
	}
	return *radiusKm, nil
}

// InRegion keeps the pending, non-removed orders of region, preserving input order.
func (m OrderMatcher) InRegion(orders []*order.Order, region string) []Match {
	matches := make([]Match, 0, len(orders))
	for _, o := range orders {
		if o.Status() != order.Pending || o.IsRemoved() || !kernel.SameRegion(o.Region(), region) {
			continue
		}
		matches = append(matches, Match{Order: o})
	}
	return matches
}

// OffersFor returns matches only to a driver who declared itself available. Busy and offline
// drivers, including those that never set a status, are offered nothing.
func (m OrderMatcher) OffersFor(status *driver.Status, matches []Match) []Match {
	if status == nil || status.Availability() != driver.Available {
		return []Match{}
	}
	return matches
}

// WithinRadius keeps the matches whose pickup point lies within radiusKm of origin,
// preserving input order.
func (m OrderMatcher) WithinRadius(matches []Match, origin kernel.GeoPoint, radiusKm float64) []Match {
	filtered := make([]Match, 0, len(matches))
	for _, match := range matches {
		pickup := match.Order.Pickup()
		if !pickup.HasPoint() {
			continue
		}
		d := origin.DistanceKm(*pickup.Point)
		if math.IsNaN(d) || d > radiusKm {
			continue
		}
		filtered = append(filtered, Match{Order: match.Order, DistanceKm: &d})
	}
	return filtered
}

// Accept runs the domain checks of a driver claiming o and applies the assignment in memory.
// Persisting it atomically is the caller's job.
func (m OrderMatcher) Accept(o *order.Order, driver kernel.Profile, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if driver.Role != kernel.RoleDriver {
		return errs.NewForbiddenError("accept order", fmt.Sprintf("role %s cannot accept orders", driver.Role))
	}
	if !driver.HasRegion() {
		return errs.NewValueIsRequiredError("driver region")
	}
	return o.Accept(driver.ID, driver.Region, now)
}
