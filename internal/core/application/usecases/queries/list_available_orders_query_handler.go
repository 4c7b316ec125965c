package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ListAvailableOrdersQueryHandler shows drivers the pending orders they may accept. Only drivers
// whose availability is "available" are offered orders; everyone else gets an empty list.
//
// When a radius or coordinates are given, orders are further restricted to those whose pickup
// point lies within the radius of the driver. The driver position comes from the query, else
// from the profile. A radius without any known position is a validation error.
type ListAvailableOrdersQueryHandler struct {
	orders   ports.OrderRepository
	statuses ports.DriverStatusRepository
	profiles ports.ProfileProvider
	matcher  services.OrderMatcher
}

func NewListAvailableOrdersQueryHandler(
	orders ports.OrderRepository, statuses ports.DriverStatusRepository, profiles ports.ProfileProvider,
) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{
		orders:   orders,
		statuses: statuses,
		profiles: profiles,
		matcher:  services.NewOrderMatcher(),
	}
}

func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]services.Match, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Get(ctx, query.DriverID())
	if err != nil {
		return nil, err
	}
	if profile.Role != kernel.RoleDriver {
		return nil, errs.NewForbiddenError("list available orders", "only drivers see available orders")
	}
	if !profile.HasRegion() {
		return nil, errs.NewValueIsRequiredError("driver region")
	}

	status, err := h.statuses.Get(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	pending, err := h.orders.ListPendingInRegion(ctx, profile.Region, query.OrderType())
	if err != nil {
		return nil, err
	}
	matches := h.matcher.InRegion(pending, profile.Region)

	if !query.FiltersByRadius() {
		return h.matcher.OffersFor(status, matches), nil
	}

	radius, err := services.NormalizeRadius(query.RadiusKm())
	if err != nil {
		return nil, err
	}
	origin := query.Origin()
	if origin == nil {
		origin = profile.Location
	}
	if origin == nil {
		return nil, errs.NewValueIsRequiredError("driver location")
	}

	return h.matcher.OffersFor(status, h.matcher.WithinRadius(matches, *origin, radius)), nil
}
