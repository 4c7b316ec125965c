package rating

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	MinScore         = 1
	MaxScore         = 5
	MaxCommentLength = 500
)

var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating constructor")

// Rating is the immutable score a customer gives the driver of a completed order.
type Rating struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	driverID   kernel.UUID
	score      int
	comment    string
	createdAt  time.Time

	isConstructed bool
}

func NewRating(orderID, customerID, driverID kernel.UUID, score int, comment string, now time.Time) (*Rating, error) {
	return RestoreRating(kernel.NewUUID(), orderID, customerID, driverID, score, comment, now)
}

func RestoreRating(
	id, orderID, customerID, driverID kernel.UUID, score int, comment string, createdAt time.Time,
) (*Rating, error) {
	comment = strings.TrimSpace(comment)

	var problems []error
	for param, v := range map[string]kernel.UUID{"id": id, "order id": orderID, "customer id": customerID, "driver id": driverID} {
		if err := v.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(param, err))
		}
	}
	if score < MinScore || score > MaxScore {
		problems = append(problems, errs.NewValueIsOutOfRangeError("score", score, MinScore, MaxScore))
	}
	if n := utf8.RuneCountInString(comment); n > MaxCommentLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Rating{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		driverID:      driverID,
		score:         score,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *Rating) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRatingIsNotConstructed
	}
	return nil
}

func (r *Rating) ID() kernel.UUID { return r.id }
func (r *Rating) OrderID() kernel.UUID { return r.orderID }
func (r *Rating) CustomerID() kernel.UUID { return r.customerID }
func (r *Rating) DriverID() kernel.UUID { return r.driverID }
func (r *Rating) Score() int { return r.score }
func (r *Rating) Comment() string { return r.comment }
func (r *Rating) CreatedAt() time.Time { return r.createdAt }
