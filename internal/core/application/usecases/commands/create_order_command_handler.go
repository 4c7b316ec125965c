package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler places orders for customers. The order region is taken from the
// customer's profile and the price must reach the configured minimum fare.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	profiles   ports.ProfileProvider
	clock      ports.Clock
	minFare    decimal.Decimal
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	profiles ports.ProfileProvider,
	clock ports.Clock,
	minFare decimal.Decimal,
) CreateOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		clock:      clock,
		minFare:    minFare,
	}
}

// Handle validates the requester, builds the pending order and persists it. OrderCreated is
// published once the transaction commits.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Get(ctx, cmd.RequesterID())
	if err != nil {
		return nil, err
	}
	if profile.Role != kernel.RoleCustomer {
		return nil, errs.NewForbiddenError("create order", "only customers may place orders")
	}
	if !profile.HasRegion() {
		return nil, errs.NewValueIsRequiredError("region")
	}
	if cmd.Price().LessThan(h.minFare) {
		return nil, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is below the minimum fare %s", cmd.Price().StringFixed(2), h.minFare.StringFixed(2)))
	}

	o, err := order.NewOrder(cmd.Params(profile.Region), h.clock.Now())
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

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
