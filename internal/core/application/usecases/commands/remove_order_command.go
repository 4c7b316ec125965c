package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveOrderCommandIsNotConstructed = errors.New(
	"RemoveOrderCommand must be created via NewRemoveOrderCommand constructor",
)

// RemoveOrderCommand hides a pending or cancelled order from its customer.
type RemoveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderCommand(orderID, customerID kernel.UUID) (RemoveOrderCommand, error) {
	if err := errors.Join(
		requireID("order id", orderID),
		requireID("customer id", customerID),
	); err != nil {
		return RemoveOrderCommand{}, err
	}

	return RemoveOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderCommandIsNotConstructed)
}

func (c RemoveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RemoveOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}
