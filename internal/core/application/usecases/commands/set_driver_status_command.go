package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetDriverStatusCommandIsNotConstructed = errors.New(
	"SetDriverStatusCommand must be created via NewSetDriverStatusCommand constructor",
)

// SetDriverStatusCommand declares the availability of a driver.
type SetDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	availability driver.Availability

	guard guard.ConstructorGuard
}

func NewSetDriverStatusCommand(driverID kernel.UUID, availability string) (SetDriverStatusCommand, error) {
	a, err := driver.ParseAvailability(availability)
	if err = errors.Join(requireID("driver id", driverID), err); err != nil {
		return SetDriverStatusCommand{}, err
	}

	return SetDriverStatusCommand{
		driverID:     driverID,
		availability: a,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverStatusCommandIsNotConstructed)
}

func (c SetDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c SetDriverStatusCommand) Availability() driver.Availability {
	return c.availability
}
