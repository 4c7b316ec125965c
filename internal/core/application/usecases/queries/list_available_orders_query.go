package queries

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// AvailableOrdersFilter narrows the pending orders a driver sees. All fields are optional.
// Latitude and Longitude override the location stored in the driver's profile.
type AvailableOrdersFilter struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Type      string
}

// ListAvailableOrdersQuery lists the pending orders of the driver's region.
//
// Example:
//
//	radius := 5.0
//	q, err := NewListAvailableOrdersQuery(driverID, AvailableOrdersFilter{RadiusKm: &radius})
type ListAvailableOrdersQuery struct {
	driverID  kernel.UUID
	origin    *kernel.GeoPoint
	radiusKm  *float64
	orderType *order.Type

	guard guard.ConstructorGuard
}

func NewListAvailableOrdersQuery(driverID kernel.UUID, filter AvailableOrdersFilter) (ListAvailableOrdersQuery, error) {
	q := ListAvailableOrdersQuery{
		radiusKm: filter.RadiusKm,
		guard:    guard.NewConstructorGuard(),
	}

	origin, originErr := kernel.NewOptionalGeoPoint(filter.Latitude, filter.Longitude)
	q.origin = origin

	var typeErr error
	if strings.TrimSpace(filter.Type) != "" {
		t, err := order.ParseType(filter.Type)
		q.orderType, typeErr = &t, err
	}

	if err := errors.Join(requireID("driver id", driverID), originErr, typeErr); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	q.driverID = driverID
	return q, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Origin is the point given in the request, nil when absent.
func (q ListAvailableOrdersQuery) Origin() *kernel.GeoPoint {
	return q.origin
}

func (q ListAvailableOrdersQuery) RadiusKm() *float64 {
	return q.radiusKm
}

func (q ListAvailableOrdersQuery) OrderType() *order.Type {
	return q.orderType
}

// FiltersByRadius reports whether the caller asked for a distance filter.
func (q ListAvailableOrdersQuery) FiltersByRadius() bool {
	return q.radiusKm != nil || q.origin != nil
}
