package memory

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

type DriverStatusRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *DriverStatusRepository) Get(_ context.Context, driverID kernel.UUID) (*driver.Status, error) {
	var (
		record driverStatusRecord
		found  bool
	)
	err := r.store.view(r.uow, func(d *data) error {
		record, found = d.driverStatus[driverID.Bytes()]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return driver.NewStatus(driverID)
	}
	return driver.RestoreStatus(driverID, record.availability, record.updatedAt)
}

func (r *DriverStatusRepository) Save(_ context.Context, status *driver.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	err := r.store.view(r.uow, func(d *data) error {
		d.driverStatus[status.DriverID().Bytes()] = driverStatusRecord{
			availability: status.Availability(),
			updatedAt:    status.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.uow.TrackAggregate(status)
	return nil
}

func (r *DriverStatusRepository) ListIdle(_ context.Context, cutoff time.Time) ([]*driver.Status, error) {
	var idle []*driver.Status
	err := r.store.view(r.uow, func(d *data) error {
		for id, record := range d.driverStatus {
			driverID, err := kernel.UUIDFromGoogle(id)
			if err != nil {
				return err
			}
			status, err := driver.RestoreStatus(driverID, record.availability, record.updatedAt)
			if err != nil {
				return err
			}
			if status.IsIdleSince(cutoff) {
				idle = append(idle, status)
			}
		}
		return nil
	})
	return idle, err
}
