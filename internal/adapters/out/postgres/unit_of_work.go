// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// The Unit of Work maintains the list of aggregates affected by a business transaction,
// writes their changes in one database transaction and publishes their domain events once
// the transaction has committed.
//
// Key Features:
//   - Transaction management across order, earning, rating and driver status repositories
//   - Aggregate tracking for domain event publication after commit
//   - Compare-and-set order writes that detect concurrent changes
//   - Proper isolation between concurrent operations
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, bus)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	expected := o.State()
//	if err := o.TransitionBy(actor, order.Completed, now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o, expected); err != nil {
//	    return err
//	}
//	if _, err := uow.EarningRepository().Credit(ctx, e); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines must not share instances
//   - Order updates carry the observed status and driver in their WHERE clause, so the
//     loser of a race gets errs.ErrConflict instead of overwriting the winner
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/driverstatusrepo"
	"dispatch/internal/adapters/out/postgres/earningrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/adapters/out/postgres/ratingrepo"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/ddd"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Events of committed aggregates are handed to publisher; a nil publisher drops them.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, eventbus.NewBus(logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Implements the Unit of Work pattern using GORM's
// transaction capabilities to ensure data consistency and proper rollback handling.
//
// Repositories obtained before Begin run on the plain connection; repositories obtained
// after Begin run inside the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []ddd.AggregateRoot
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Unavailable("begin transaction", tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = nil
	return nil
}

// Commit finalizes all changes made within the current transaction and then publishes
// the domain events raised by tracked aggregates. Events are cleared from the aggregates
// so a retried command never publishes them twice.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists. A failed commit is
// reported as errs.ErrUnavailable.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = nil
		return pgerr.Unavailable("commit transaction", err)
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards all changes made within the current transaction together with the
// tracked aggregates. Handlers defer it right after Begin; after a successful Commit it
// returns gorm.ErrInvalidTransaction, which they ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
// The returned repository tracks every order it adds or updates.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// EarningRepository provides access to the earnings ledger within the unit of work.
func (uow *GormUnitOfWork) EarningRepository() ports.EarningRepository {
	return earningrepo.NewGormEarningRepository(uow.conn())
}

func (uow *GormUnitOfWork) RatingRepository() ports.RatingRepository {
	return ratingrepo.NewGormRatingRepository(uow.conn())
}

// DriverStatusRepository tracks saved statuses so their StatusUpdatedEvent is published.
func (uow *GormUnitOfWork) DriverStatusRepository() ports.DriverStatusRepository {
	return driverstatusrepo.NewGormDriverStatusRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// This method is called by repository implementations when aggregates are written.
func (uow *GormUnitOfWork) TrackAggregate(aggregate ddd.AggregateRoot) {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = nil

	var events []ddd.DomainEvent
	for _, aggregate := range tracked {
		events = append(events, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}

	if uow.publisher != nil && len(events) > 0 {
		uow.publisher.Publish(ctx, events...)
	}
}
