package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every change to an existing order is a conditional write against the state the caller
// observed; when the stored row no longer matches, the write fails with errs.ErrConflict
// and nothing is changed.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a non-removed order by id. Returns errs.ErrObjectNotFound otherwise.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByCustomer returns the non-removed orders of a customer, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// ListPendingInRegion returns pending, non-removed orders whose region equals region
	// case-insensitively, newest first. A non-nil orderType narrows the result.
	ListPendingInRegion(ctx context.Context, region string, orderType *order.Type) ([]*order.Order, error)

	// Update writes the aggregate only if the stored status and driver still equal expected.
	Update(ctx context.Context, aggregate *order.Order, expected order.State) error

	// Remove soft-deletes the order only if the stored status and driver still equal expected.
	Remove(ctx context.Context, aggregate *order.Order, expected order.State) error

	// CountByStatus counts non-removed orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int64, error)
}
