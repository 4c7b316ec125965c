package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
)

type RatingRepository interface {
	// Add stores a rating. A second rating for the same order fails with errs.ErrConflict.
	Add(ctx context.Context, r *rating.Rating) error

	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
