// Package memory is an in-process implementation of the persistence ports. A unit of work
// holds the store lock from Begin to Commit or Rollback, which serializes writers the same
// way a row lock does and makes conditional writes atomic.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

type driverStatusRecord struct {
	availability driver.Availability
	updatedAt    time.Time
}

type data struct {
	orders        map[uuid.UUID]order.Snapshot
	earnings      map[uuid.UUID]*earning.Earning
	ratings       map[uuid.UUID]*rating.Rating
	driverStatus  map[uuid.UUID]driverStatusRecord
	notifications []ports.InboxEntry
}

func newData() data {
	return data{
		orders:       make(map[uuid.UUID]order.Snapshot),
		earnings:     make(map[uuid.UUID]*earning.Earning),
		ratings:      make(map[uuid.UUID]*rating.Rating),
		driverStatus: make(map[uuid.UUID]driverStatusRecord),
	}
}

// clone copies the maps. Values are immutable snapshots so a shallow copy is enough.
func (d data) clone() data {
	return data{
		orders:        maps.Clone(d.orders),
		earnings:      maps.Clone(d.earnings),
		ratings:       maps.Clone(d.ratings),
		driverStatus:  maps.Clone(d.driverStatus),
		notifications: slices.Clone(d.notifications),
	}
}

// Store holds every record of the service in memory.
type Store struct {
	mu   sync.Mutex
	data data

	profilesMu sync.RWMutex
	profiles   map[uuid.UUID]kernel.Profile
}

func NewStore() *Store {
	return &Store{
		data:     newData(),
		profiles: make(map[uuid.UUID]kernel.Profile),
	}
}

// view runs fn under the store lock unless the caller already holds it through a unit of work.
func (s *Store) view(uow *UnitOfWork, fn func(d *data) error) error {
	if uow != nil && uow.active {
		return fn(&s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}
