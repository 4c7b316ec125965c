package earning

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning or RestoreEarning constructor")

// Earning is a single ledger row: what a driver earned for one completed order.
// There is at most one earning per order.
type Earning struct {
	id        kernel.UUID
	driverID  kernel.UUID
	orderID   kernel.UUID
	amount    decimal.Decimal
	createdAt time.Time

	isConstructed bool
}

func NewEarning(driverID, orderID kernel.UUID, amount decimal.Decimal, now time.Time) (*Earning, error) {
	return RestoreEarning(kernel.NewUUID(), driverID, orderID, amount, now)
}

func RestoreEarning(id, driverID, orderID kernel.UUID, amount decimal.Decimal, createdAt time.Time) (*Earning, error) {
	var amountErr error
	if !amount.IsPositive() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if err := errors.Join(
		id.Validate(),
		requiredID("driver id", driverID),
		requiredID("order id", orderID),
		amountErr,
	); err != nil {
		return nil, err
	}

	return &Earning{
		id:            id,
		driverID:      driverID,
		orderID:       orderID,
		amount:        amount.Round(2),
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (e *Earning) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEarningIsNotConstructed
	}
	return nil
}

func (e *Earning) ID() kernel.UUID {
	return e.id
}

func (e *Earning) DriverID() kernel.UUID {
	return e.driverID
}

func (e *Earning) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Earning) Amount() decimal.Decimal {
	return e.amount
}

func (e *Earning) CreatedAt() time.Time {
	return e.createdAt
}

// Total sums the amounts of earnings.
func Total(earnings []*Earning) decimal.Decimal {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.amount)
	}
	return total
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
