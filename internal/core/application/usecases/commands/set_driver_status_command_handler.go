package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// SetDriverStatusCommandHandler stores the availability a driver declares and publishes
// DriverStatusUpdated after commit.
type SetDriverStatusCommandHandler struct {
	uowFactory DriverStatusUoWFactory
	profiles   ports.ProfileProvider
	clock      ports.Clock
}

func NewSetDriverStatusCommandHandler(
	uowFactory DriverStatusUoWFactory, profiles ports.ProfileProvider, clock ports.Clock,
) SetDriverStatusCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return SetDriverStatusCommandHandler{uowFactory: uowFactory, profiles: profiles, clock: clock}
}

func (h SetDriverStatusCommandHandler) Handle(ctx context.Context, cmd SetDriverStatusCommand) (*driver.Status, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverStatusRepository()
	status, err := repo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if err = status.Change(profile, cmd.Availability(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Save(ctx, status); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return status, nil
}
