package memory

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ProfileDirectory serves profiles registered with Put.
type ProfileDirectory struct {
	store *Store
}

func NewProfileDirectory(store *Store) *ProfileDirectory {
	return &ProfileDirectory{store: store}
}

func (p *ProfileDirectory) Put(profile kernel.Profile) {
	p.store.profilesMu.Lock()
	defer p.store.profilesMu.Unlock()
	p.store.profiles[profile.ID.Bytes()] = profile
}

func (p *ProfileDirectory) Get(_ context.Context, id kernel.UUID) (kernel.Profile, error) {
	p.store.profilesMu.RLock()
	defer p.store.profilesMu.RUnlock()

	profile, ok := p.store.profiles[id.Bytes()]
	if !ok {
		return kernel.Profile{}, errs.NewObjectNotFoundError("profile", id.String())
	}
	return profile, nil
}
