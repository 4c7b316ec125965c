package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type RemoveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewRemoveOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) RemoveOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return RemoveOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle soft-removes the order. The removal is conditional on the status it was read with.
func (h RemoveOrderCommandHandler) Handle(ctx context.Context, cmd RemoveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.State()
	actor := kernel.Actor{ID: cmd.CustomerID(), Role: kernel.RoleCustomer}
	if err = o.MarkRemoved(actor, h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Remove(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
