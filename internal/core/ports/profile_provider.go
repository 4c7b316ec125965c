package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// ProfileProvider supplies the role, region, phone and location of users.
// Unknown users yield errs.ErrObjectNotFound.
type ProfileProvider interface {
	Get(ctx context.Context, id kernel.UUID) (kernel.Profile, error)
}
