package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	orders   ports.OrderRepository
	profiles ports.ProfileProvider
}

func NewGetOrderQueryHandler(orders ports.OrderRepository, profiles ports.ProfileProvider) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, profiles: profiles}
}

// Handle returns the order if the requester is its customer, its assigned driver, its station,
// an admin, or a driver of the same region while the order is pending.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Get(ctx, query.RequesterID())
	if err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if !o.IsVisibleTo(profile) {
		return nil, errs.NewForbiddenError("view order", "order is not visible to this user")
	}
	return o, nil
}
