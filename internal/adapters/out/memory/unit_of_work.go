package memory

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/ddd"
)

var ErrNoActiveTransaction = errors.New("memory: no active transaction")

type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher}
}

// UnitOfWork keeps a copy of the store taken at Begin and restores it on Rollback.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	active    bool
	backup    data
	tracked   []ddd.AggregateRoot
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	u.backup = u.store.data.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	u.backup = data{}
	u.store.mu.Unlock()

	u.publishTracked(ctx)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.store.data = u.backup
	u.backup = data{}
	u.active = false
	u.tracked = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) TrackAggregate(aggregate ddd.AggregateRoot) {
	u.tracked = append(u.tracked, aggregate)
}

func (u *UnitOfWork) publishTracked(ctx context.Context) {
	var events []ddd.DomainEvent
	for _, aggregate := range u.tracked {
		events = append(events, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}
	u.tracked = nil
	if len(events) > 0 && u.publisher != nil {
		u.publisher.Publish(ctx, events...)
	}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) EarningRepository() ports.EarningRepository {
	return &EarningRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) RatingRepository() ports.RatingRepository {
	return &RatingRepository{store: u.store, uow: u}
}

func (u *UnitOfWork) DriverStatusRepository() ports.DriverStatusRepository {
	return &DriverStatusRepository{store: u.store, uow: u}
}
