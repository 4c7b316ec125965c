package memory

import (
	"context"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	snapshot := aggregate.Snapshot()

	err := r.store.view(r.uow, func(d *data) error {
		if _, exists := d.orders[snapshot.ID.Bytes()]; exists {
			return errs.NewConflictError("order", snapshot.ID, "order already exists")
		}
		d.orders[snapshot.ID.Bytes()] = snapshot
		return nil
	})
	if err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var snapshot order.Snapshot
	err := r.store.view(r.uow, func(d *data) error {
		s, ok := d.orders[id.Bytes()]
		if !ok || s.RemovedAt != nil {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		snapshot = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(snapshot)
}

func (r *OrderRepository) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.list(func(s order.Snapshot) bool {
		return s.CustomerID.IsEqual(customerID)
	})
}

func (r *OrderRepository) ListPendingInRegion(
	_ context.Context, region string, orderType *order.Type,
) ([]*order.Order, error) {
	return r.list(func(s order.Snapshot) bool {
		if s.Status != order.Pending || !kernel.SameRegion(s.Region, region) {
			return false
		}
		return orderType == nil || s.Type == *orderType
	})
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order, expected order.State) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	snapshot := aggregate.Snapshot()

	err := r.store.view(r.uow, func(d *data) error {
		if err := checkExpected(d, snapshot.ID, expected); err != nil {
			return err
		}
		d.orders[snapshot.ID.Bytes()] = snapshot
		return nil
	})
	if err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r *OrderRepository) Remove(_ context.Context, aggregate *order.Order, expected order.State) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsRemoved() {
		return errs.NewInvalidStateError("remove order that was not marked removed", aggregate.Status())
	}
	snapshot := aggregate.Snapshot()

	return r.store.view(r.uow, func(d *data) error {
		if err := checkExpected(d, snapshot.ID, expected); err != nil {
			return err
		}
		d.orders[snapshot.ID.Bytes()] = snapshot
		return nil
	})
}

func (r *OrderRepository) CountByStatus(_ context.Context) (map[order.Status]int64, error) {
	counts := make(map[order.Status]int64)
	err := r.store.view(r.uow, func(d *data) error {
		for _, s := range d.orders {
			if s.RemovedAt == nil {
				counts[s.Status]++
			}
		}
		return nil
	})
	return counts, err
}

func (r *OrderRepository) list(keep func(order.Snapshot) bool) ([]*order.Order, error) {
	var snapshots []order.Snapshot
	err := r.store.view(r.uow, func(d *data) error {
		for _, s := range d.orders {
			if s.RemovedAt == nil && keep(s) {
				snapshots = append(snapshots, s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(snapshots, func(a, b order.Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	orders := make([]*order.Order, 0, len(snapshots))
	for _, s := range snapshots {
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func checkExpected(d *data, id kernel.UUID, expected order.State) error {
	stored, ok := d.orders[id.Bytes()]
	if !ok || stored.RemovedAt != nil {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if stored.Status != expected.Status || !sameDriver(stored.DriverID, expected.DriverID) ||
		(expected.PaymentStatus != "" && stored.PaymentStatus != expected.PaymentStatus) {
		return errs.NewConflictError("order", id, "order was changed concurrently")
	}
	return nil
}

func sameDriver(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}
