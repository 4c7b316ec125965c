package memory

import (
	"context"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// NotificationRepository is the in-memory inbox. It does not take part in units of work.
type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Add(_ context.Context, entry ports.InboxEntry) error {
	return r.store.view(nil, func(d *data) error {
		d.notifications = append(d.notifications, entry)
		return nil
	})
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID kernel.UUID, limit int) ([]ports.InboxEntry, error) {
	var result []ports.InboxEntry
	err := r.store.view(nil, func(d *data) error {
		for _, n := range d.notifications {
			if n.UserID.IsEqual(userID) {
				result = append(result, n)
			}
		}
		return nil
	})
	slices.SortStableFunc(result, func(a, b ports.InboxEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, err
}
