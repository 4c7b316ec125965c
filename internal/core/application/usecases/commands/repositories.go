// Package commands contains the operations that change order, ledger, rating and driver state.
// Every handler validates its command, opens a unit of work, applies the domain change with a
// conditional write and commits. Domain events leave the unit of work only after Commit.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	DriverStatusRepoFactory interface {
		DriverStatusRepository() ports.DriverStatusRepository
	}

	// OrderUoW is used by commands that only touch the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW covers lifecycle transitions, which credit the ledger on completion
	// in the same transaction.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		EarningRepoFactory
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	RatingUoW interface {
		TxManager
		OrderRepoFactory
		RatingRepoFactory
	}

	RatingUoWFactory interface {
		Create() RatingUoW
	}

	DriverStatusUoW interface {
		TxManager
		DriverStatusRepoFactory
	}

	DriverStatusUoWFactory interface {
		Create() DriverStatusUoW
	}
)
