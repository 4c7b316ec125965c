package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records the customer's score for the driver of a completed order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	score      int
	comment    string

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID, customerID kernel.UUID, score int, comment string) (RateOrderCommand, error) {
	var scoreErr error
	if score < rating.MinScore || score > rating.MaxScore {
		scoreErr = errs.NewValueIsOutOfRangeError("score", score, rating.MinScore, rating.MaxScore)
	}

	if err := errors.Join(
		requireID("order id", orderID),
		requireID("customer id", customerID),
		scoreErr,
	); err != nil {
		return RateOrderCommand{}, err
	}

	return RateOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		score:      score,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RateOrderCommand) Score() int {
	return c.score
}

func (c RateOrderCommand) Comment() string {
	return c.comment
}
