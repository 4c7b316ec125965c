package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListDriverEarningsQueryIsNotConstructed = errors.New(
	"ListDriverEarningsQuery must be created via NewListDriverEarningsQuery constructor",
)

type ListDriverEarningsQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListDriverEarningsQuery(driverID kernel.UUID) (ListDriverEarningsQuery, error) {
	if err := requireID("driver id", driverID); err != nil {
		return ListDriverEarningsQuery{}, err
	}
	return ListDriverEarningsQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDriverEarningsQuery) Validate() error {
	return q.guard.Validate(ErrListDriverEarningsQueryIsNotConstructed)
}

func (q ListDriverEarningsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// ListDriverEarningsQueryResponse is the ledger of a driver, newest first, with its total.
type ListDriverEarningsQueryResponse struct {
	Earnings []*earning.Earning
	Total    decimal.Decimal
}

type ListDriverEarningsQueryHandler struct {
	earnings ports.EarningRepository
}

func NewListDriverEarningsQueryHandler(earnings ports.EarningRepository) ListDriverEarningsQueryHandler {
	return ListDriverEarningsQueryHandler{earnings: earnings}
}

func (h ListDriverEarningsQueryHandler) Handle(
	ctx context.Context, query ListDriverEarningsQuery,
) (ListDriverEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListDriverEarningsQueryResponse{}, err
	}

	list, err := h.earnings.ListByDriver(ctx, query.DriverID())
	if err != nil {
		return ListDriverEarningsQueryResponse{}, err
	}
	return ListDriverEarningsQueryResponse{Earnings: list, Total: earning.Total(list)}, nil
}
