package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand marks a completed order as paid.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	method  order.PaymentMethod
	amount  decimal.Decimal

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	orderID kernel.UUID, actor kernel.Actor, method string, amount decimal.Decimal,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setMethod(method),
		cmd.setAmount(amount),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordPaymentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RecordPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c RecordPaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c *RecordPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *RecordPaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actor = actor
	return nil
}

func (c *RecordPaymentCommand) setMethod(method string) error {
	m, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	c.method = m
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}
