package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

type ListCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(customerID kernel.UUID) (ListCustomerOrdersQuery, error) {
	if err := requireID("customer id", customerID); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// ListCustomerOrdersQueryHandler returns a customer's orders, newest first. Removed orders are hidden.
type ListCustomerOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewListCustomerOrdersQueryHandler(orders ports.OrderRepository) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{orders: orders}
}

func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.ListByCustomer(ctx, query.CustomerID())
}
