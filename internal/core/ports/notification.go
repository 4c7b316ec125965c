package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Notification is the flat message delivered on a channel.
type Notification struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
}

// ChannelPublisher delivers a notification to the subscribers of a logical channel such as
// "orders.riyadh" or "customer.<id>".
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, n Notification) error
}

// InboxEntry is a notification persisted for a single user.
type InboxEntry struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Channel   string
	Event     string
	Message   string
	Payload   map[string]any
	CreatedAt time.Time
}

type NotificationRepository interface {
	Add(ctx context.Context, entry InboxEntry) error

	// ListByUser returns up to limit entries of a user, newest first.
	ListByUser(ctx context.Context, userID kernel.UUID, limit int) ([]InboxEntry, error)
}
