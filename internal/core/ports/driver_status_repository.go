package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

type DriverStatusRepository interface {
	// Get returns the stored status, or a fresh offline status when the driver never set one.
	Get(ctx context.Context, driverID kernel.UUID) (*driver.Status, error)

	// Save upserts the availability of the driver.
	Save(ctx context.Context, status *driver.Status) error

	// ListIdle returns available drivers whose status has not changed since cutoff.
	ListIdle(ctx context.Context, cutoff time.Time) ([]*driver.Status, error)
}
