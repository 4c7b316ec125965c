package ports

import (
	"context"
	"time"

	"dispatch/internal/pkg/ddd"
)

// EventPublisher dispatches committed domain events to in-process subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...ddd.DomainEvent)
}

// Clock is the time source of the use cases.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })
