package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand claims a pending order for a driver.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID, driverID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(
		requireID("order id", orderID),
		requireID("driver id", driverID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AcceptOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func requireID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
