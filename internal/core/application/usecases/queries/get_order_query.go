// Package queries contains the read operations of the dispatch service. Queries never open a
// transaction and never publish events.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of a requester. The order is returned only when
// the requester may see it.
type GetOrderQuery struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, requesterID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(requireID("order id", orderID), requireID("requester id", requesterID)); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, requesterID: requesterID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

func requireID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
