// Package ports defines the contracts between the dispatch use cases and infrastructure:
// repositories, the unit of work, profile lookup, event publication and notification transports.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates written through its repositories
// are tracked and their domain events are published only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes the changes durable, then publishes the domain events of tracked aggregates.
	Commit(ctx context.Context) error

	// Rollback discards pending changes and tracked events. After Commit it returns an error
	// that deferred callers ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	EarningRepository() EarningRepository
	RatingRepository() RatingRepository
	DriverStatusRepository() DriverStatusRepository
}
