package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to a new lifecycle status on behalf of an actor.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, actor kernel.Actor, target order.Status) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// NewCancelOrderCommand is the customer cancellation of an order.
func NewCancelOrderCommand(orderID, customerID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, kernel.Actor{ID: customerID, Role: kernel.RoleCustomer}, order.Cancelled)
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
