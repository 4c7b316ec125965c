package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AcceptOrderCommandHandler assigns a pending order to the requesting driver.
// Of any number of drivers racing for the same order exactly one succeeds; the
// others receive errs.ErrConflict.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	profiles   ports.ProfileProvider
	clock      ports.Clock
	matcher    services.OrderMatcher
}

func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory, profiles ports.ProfileProvider, clock ports.Clock,
) AcceptOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		clock:      clock,
		matcher:    services.NewOrderMatcher(),
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := o.State()
	if err = h.matcher.Accept(o, profile, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
