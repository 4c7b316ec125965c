// Package inbox stores notifications of private channels so users can read them later.
package inbox

import (
	"context"

	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type Publisher struct {
	repo  ports.NotificationRepository
	clock ports.Clock
}

func NewPublisher(repo ports.NotificationRepository, clock ports.Clock) *Publisher {
	return &Publisher{repo: repo, clock: clock}
}

// Publish persists notifications of customer and driver channels. Region and admin
// channels have no single owner and are ignored.
func (p *Publisher) Publish(ctx context.Context, channel string, n ports.Notification) error {
	userID, ok := fanout.UserFromChannel(channel)
	if !ok {
		return nil
	}

	payload := n.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	return p.repo.Add(ctx, ports.InboxEntry{
		ID:        kernel.NewUUID(),
		UserID:    userID,
		Channel:   channel,
		Event:     n.Event,
		Message:   n.Message,
		Payload:   payload,
		CreatedAt: p.clock.Now(),
	})
}
