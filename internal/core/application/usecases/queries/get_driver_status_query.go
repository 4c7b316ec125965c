package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverStatusQueryIsNotConstructed = errors.New(
	"GetDriverStatusQuery must be created via NewGetDriverStatusQuery constructor",
)

type GetDriverStatusQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverStatusQuery(driverID kernel.UUID) (GetDriverStatusQuery, error) {
	if err := requireID("driver id", driverID); err != nil {
		return GetDriverStatusQuery{}, err
	}
	return GetDriverStatusQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverStatusQueryIsNotConstructed)
}

func (q GetDriverStatusQuery) DriverID() kernel.UUID {
	return q.driverID
}

// GetDriverStatusQueryHandler returns the availability of a driver, offline when never set.
type GetDriverStatusQueryHandler struct {
	statuses ports.DriverStatusRepository
}

func NewGetDriverStatusQueryHandler(statuses ports.DriverStatusRepository) GetDriverStatusQueryHandler {
	return GetDriverStatusQueryHandler{statuses: statuses}
}

func (h GetDriverStatusQueryHandler) Handle(ctx context.Context, query GetDriverStatusQuery) (*driver.Status, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.statuses.Get(ctx, query.DriverID())
}
