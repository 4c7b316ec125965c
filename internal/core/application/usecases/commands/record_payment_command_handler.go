package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// RecordPaymentCommandHandler settles completed orders. The write is conditional on the
// payment status the order was read with, so two concurrent payments cannot both succeed.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewRecordPaymentCommandHandler(
	uowFactory OrderUoWFactory, clock ports.Clock, logger *slog.Logger,
) RecordPaymentCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "RecordPaymentCommandHandler"),
	}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*order.Order, error) {
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
	if err = o.RecordPayment(cmd.Actor(), cmd.Method(), cmd.Amount(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, order.PaymentRecordedMessage,
		"order_id", o.ID().String(),
		"method", string(o.PaymentMethod()),
		"actor_role", cmd.Actor().Role.String(),
	)
	return o, nil
}
