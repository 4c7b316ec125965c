package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetEarningsSummaryQueryIsNotConstructed = errors.New(
	"GetEarningsSummaryQuery must be created via NewGetEarningsSummaryQuery constructor",
)

// GetEarningsSummaryQuery sums a driver's earnings for today, this week and this month as
// seen from the time zone named by timezone (an IANA name, UTC when empty).
type GetEarningsSummaryQuery struct {
	driverID kernel.UUID
	location *time.Location

	guard guard.ConstructorGuard
}

func NewGetEarningsSummaryQuery(driverID kernel.UUID, timezone string) (GetEarningsSummaryQuery, error) {
	loc := time.UTC
	var tzErr error
	if tz := strings.TrimSpace(timezone); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			tzErr = errs.NewValueIsInvalidErrorWithCause("timezone", err)
		}
	}

	if err := errors.Join(requireID("driver id", driverID), tzErr); err != nil {
		return GetEarningsSummaryQuery{}, err
	}
	return GetEarningsSummaryQuery{driverID: driverID, location: loc, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsSummaryQueryIsNotConstructed)
}

func (q GetEarningsSummaryQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q GetEarningsSummaryQuery) Location() *time.Location {
	return q.location
}

type GetEarningsSummaryQueryHandler struct {
	earnings ports.EarningRepository
	clock    ports.Clock
}

func NewGetEarningsSummaryQueryHandler(earnings ports.EarningRepository, clock ports.Clock) GetEarningsSummaryQueryHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return GetEarningsSummaryQueryHandler{earnings: earnings, clock: clock}
}

func (h GetEarningsSummaryQueryHandler) Handle(ctx context.Context, query GetEarningsSummaryQuery) (earning.Summary, error) {
	if err := query.Validate(); err != nil {
		return earning.Summary{}, err
	}

	window := earning.NewWindow(h.clock.Now(), query.Location())

	today, err := h.sum(ctx, query.DriverID(), window.Today())
	if err != nil {
		return earning.Summary{}, err
	}
	week, err := h.sum(ctx, query.DriverID(), window.Week())
	if err != nil {
		return earning.Summary{}, err
	}
	month, err := h.sum(ctx, query.DriverID(), window.Month())
	if err != nil {
		return earning.Summary{}, err
	}

	return earning.Summary{Today: today, Week: week, Month: month}, nil
}

func (h GetEarningsSummaryQueryHandler) sum(ctx context.Context, driverID kernel.UUID, r earning.Range) (decimal.Decimal, error) {
	return h.earnings.SumBetween(ctx, driverID, r.From, r.To)
}
