package commands

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderDraft is the raw order a customer submits. Addresses are already parsed; the
// enumerations are parsed by NewCreateOrderCommand.
type OrderDraft struct {
	Type          string
	Pickup        order.Address
	Dropoff       order.Address
	Price         decimal.Decimal
	PaymentMethod string
	Parcel        *order.ParcelDetails
	Ride          *order.RideDetails
	Notes         string
	ScheduledAt   *time.Time
	StationID     *kernel.UUID
}

// CreateOrderCommand places a new order on behalf of a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, OrderDraft{
//	    Type:          "parcel",
//	    Pickup:        pickup,
//	    Dropoff:       dropoff,
//	    Price:         decimal.RequireFromString("50.00"),
//	    PaymentMethod: "cash",
//	    Parcel:        &order.ParcelDetails{Description: "documents", Weight: decimal.NewFromInt(1)},
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	requesterID   kernel.UUID
	orderType     order.Type
	paymentMethod order.PaymentMethod
	draft         OrderDraft

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks identifiers and enumerations. Field rules that depend on the
// order type are left to the order aggregate.
func NewCreateOrderCommand(orderID, requesterID kernel.UUID, draft OrderDraft) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		draft: draft,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setType(draft.Type),
		cmd.setPaymentMethod(draft.PaymentMethod),
		cmd.setPrice(draft.Price),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c CreateOrderCommand) Type() order.Type {
	return c.orderType
}

func (c CreateOrderCommand) Price() decimal.Decimal {
	return c.draft.Price
}

// Params builds the aggregate parameters for a customer in region.
func (c CreateOrderCommand) Params(region string) order.NewOrderParams {
	return order.NewOrderParams{
		ID:            c.orderID,
		Type:          c.orderType,
		CustomerID:    c.requesterID,
		StationID:     c.draft.StationID,
		Region:        region,
		Pickup:        c.draft.Pickup,
		Dropoff:       c.draft.Dropoff,
		Price:         c.draft.Price,
		PaymentMethod: c.paymentMethod,
		Parcel:        c.draft.Parcel,
		Ride:          c.draft.Ride,
		Notes:         c.draft.Notes,
		ScheduledAt:   c.draft.ScheduledAt,
	}
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester id", err)
	}
	c.requesterID = id
	return nil
}

func (c *CreateOrderCommand) setType(s string) error {
	if strings.TrimSpace(s) == "" {
		return errs.NewValueIsRequiredError("type")
	}
	t, err := order.ParseType(s)
	if err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(s string) error {
	if strings.TrimSpace(s) == "" {
		return errs.NewValueIsRequiredError("payment_method")
	}
	m, err := order.ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func (c *CreateOrderCommand) setPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidError("price")
	}
	return nil
}
