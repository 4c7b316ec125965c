package memory

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"
)

type RatingRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *RatingRepository) Add(_ context.Context, rt *rating.Rating) error {
	if err := rt.Validate(); err != nil {
		return err
	}
	return r.store.view(r.uow, func(d *data) error {
		if _, exists := d.ratings[rt.OrderID().Bytes()]; exists {
			return errs.NewConflictError("rating", rt.OrderID(), "order is already rated")
		}
		d.ratings[rt.OrderID().Bytes()] = rt
		return nil
	})
}

func (r *RatingRepository) ExistsForOrder(_ context.Context, orderID kernel.UUID) (bool, error) {
	exists := false
	err := r.store.view(r.uow, func(d *data) error {
		_, exists = d.ratings[orderID.Bytes()]
		return nil
	})
	return exists, err
}
