package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type RateOrderCommandHandler struct {
	uowFactory RatingUoWFactory
	clock      ports.Clock
}

func NewRateOrderCommandHandler(uowFactory RatingUoWFactory, clock ports.Clock) RateOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return RateOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle stores one rating per completed order. Only the customer who owns the order may rate it.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*rating.Rating, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(cmd.CustomerID()) {
		return nil, errs.NewForbiddenError("rate order", "order belongs to another customer")
	}
	if o.Status() != order.Completed || o.DriverID() == nil {
		return nil, errs.NewInvalidStateError("rate order", o.Status())
	}

	ratingRepo := uow.RatingRepository()
	rated, err := ratingRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, errs.NewConflictError("rating", o.ID(), "order is already rated")
	}

	r, err := rating.NewRating(o.ID(), cmd.CustomerID(), *o.DriverID(), cmd.Score(), cmd.Comment(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = ratingRepo.Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
