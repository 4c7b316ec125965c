package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// TransitionOrderCommandHandler applies lifecycle transitions. A transition into completed
// credits the assigned driver with the order price inside the same transaction, so the
// ledger never disagrees with the order trail.
type TransitionOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory SettlementUoWFactory, clock ports.Clock, logger *slog.Logger,
) TransitionOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "TransitionOrderCommandHandler"),
	}
}

// Handle loads the order, applies the transition and writes it back conditionally on the
// status and driver it was read with. A concurrent change makes the write fail with a conflict.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := o.State()
	now := h.clock.Now()
	if err = o.TransitionBy(cmd.Actor(), cmd.Target(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if o.Status() == order.Completed {
		if err = h.credit(ctx, uow.EarningRepository(), o, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, order.StatusMessage(o.Status()),
		"order_id", o.ID().String(),
		"old_status", expected.Status.String(),
		"new_status", o.Status().String(),
		"actor_role", cmd.Actor().Role.String(),
	)
	return o, nil
}

func (h TransitionOrderCommandHandler) credit(
	ctx context.Context, repo ports.EarningRepository, o *order.Order, now time.Time,
) error {
	e, err := earning.NewEarning(*o.DriverID(), o.ID(), o.Price(), now)
	if err != nil {
		return err
	}
	created, err := repo.Credit(ctx, e)
	if err != nil {
		return err
	}
	if !created {
		h.logger.WarnContext(ctx, "earning already recorded", "order_id", o.ID().String())
	}
	return nil
}
