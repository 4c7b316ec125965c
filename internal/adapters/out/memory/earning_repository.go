package memory

import (
	"context"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type EarningRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *EarningRepository) Credit(_ context.Context, e *earning.Earning) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	created := false
	err := r.store.view(r.uow, func(d *data) error {
		if _, exists := d.earnings[e.OrderID().Bytes()]; exists {
			return nil
		}
		d.earnings[e.OrderID().Bytes()] = e
		created = true
		return nil
	})
	return created, err
}

func (r *EarningRepository) ListByDriver(_ context.Context, driverID kernel.UUID) ([]*earning.Earning, error) {
	var result []*earning.Earning
	err := r.store.view(r.uow, func(d *data) error {
		for _, e := range d.earnings {
			if e.DriverID().IsEqual(driverID) {
				result = append(result, e)
			}
		}
		return nil
	})
	slices.SortFunc(result, func(a, b *earning.Earning) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return result, err
}

func (r *EarningRepository) SumBetween(
	_ context.Context, driverID kernel.UUID, from, to time.Time,
) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.store.view(r.uow, func(d *data) error {
		for _, e := range d.earnings {
			at := e.CreatedAt()
			if e.DriverID().IsEqual(driverID) && !at.Before(from) && at.Before(to) {
				sum = sum.Add(e.Amount())
			}
		}
		return nil
	})
	return sum, err
}
