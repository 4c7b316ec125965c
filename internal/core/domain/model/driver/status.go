package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/ddd"
	"dispatch/internal/pkg/errs"
)

var ErrStatusIsNotConstructed = errors.New("driver Status must be created via NewStatus or RestoreStatus constructor")

// Status tracks the availability of a single driver.
type Status struct {
	ddd.BaseAggregate

	driverID     kernel.UUID
	availability Availability
	updatedAt    time.Time

	isConstructed bool
}

// NewStatus returns the status of a driver that never declared availability: offline.
func NewStatus(driverID kernel.UUID) (*Status, error) {
	if err := driverID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	return &Status{driverID: driverID, availability: Offline, isConstructed: true}, nil
}

func RestoreStatus(driverID kernel.UUID, availability Availability, updatedAt time.Time) (*Status, error) {
	if err := errors.Join(driverID.Validate(), availability.Validate()); err != nil {
		return nil, err
	}
	return &Status{driverID: driverID, availability: availability, updatedAt: updatedAt, isConstructed: true}, nil
}

func (s *Status) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStatusIsNotConstructed
	}
	return nil
}

func (s *Status) DriverID() kernel.UUID {
	return s.driverID
}

func (s *Status) Availability() Availability {
	return s.availability
}

// UpdatedAt is the time of the last availability change; zero when never set.
func (s *Status) UpdatedAt() time.Time {
	return s.updatedAt
}

// Change records a new availability declared by the driver described by profile and raises
// StatusUpdatedEvent. Setting the same availability again still refreshes the timestamp.
func (s *Status) Change(profile kernel.Profile, to Availability, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if profile.Role != kernel.RoleDriver || !profile.ID.IsEqual(s.driverID) {
		return errs.NewForbiddenError("set driver status", "only the driver may change their availability")
	}

	old := s.availability
	s.availability = to
	s.updatedAt = now
	s.RaiseDomainEvent(StatusUpdatedEvent{
		BaseEvent:  ddd.NewBaseEvent(StatusUpdatedEventName, now),
		DriverID:   s.driverID,
		DriverName: profile.Name,
		Region:     profile.Region,
		Old:        old,
		New:        to,
	})
	return nil
}

// IsIdleSince reports whether the driver is available and has not changed status since cutoff.
func (s *Status) IsIdleSince(cutoff time.Time) bool {
	return s.availability == Available && !s.updatedAt.After(cutoff)
}

const StatusUpdatedEventName = "driver.status.updated"

type StatusUpdatedEvent struct {
	ddd.BaseEvent
	DriverID   kernel.UUID
	DriverName string
	Region     string
	Old        Availability
	New        Availability
}
