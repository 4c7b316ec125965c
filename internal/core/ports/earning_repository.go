package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EarningRepository is the driver earnings ledger.
type EarningRepository interface {
	// Credit inserts the earning unless a row already exists for its order.
	// The returned flag reports whether a row was created.
	Credit(ctx context.Context, e *earning.Earning) (bool, error)

	// ListByDriver returns the earnings of a driver, newest first.
	ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*earning.Earning, error)

	// SumBetween sums the earnings of a driver created in [from, to).
	SumBetween(ctx context.Context, driverID kernel.UUID, from, to time.Time) (decimal.Decimal, error)
}
