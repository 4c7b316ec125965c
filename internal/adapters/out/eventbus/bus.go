// Package eventbus delivers committed domain events to in-process subscribers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/pkg/ddd"
)

// Handler consumes one domain event. Handlers run synchronously on the publishing goroutine
// and must not block for long.
type Handler = func(ctx context.Context, event ddd.DomainEvent)

// Bus routes events to handlers by event name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "EventBus"),
	}
}

// Subscribe registers handler for the events named eventName.
func (b *Bus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish hands every event to its subscribers in order. A panicking handler is logged
// and does not stop the others.
func (b *Bus) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	for _, event := range events {
		b.mu.RLock()
		handlers := b.handlers[event.EventName()]
		b.mu.RUnlock()

		if len(handlers) == 0 {
			b.logger.DebugContext(ctx, "no subscribers", "event", event.EventName())
			continue
		}
		for _, handler := range handlers {
			b.dispatch(ctx, handler, event)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, handler Handler, event ddd.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"event", event.EventName(),
				"event_id", event.EventID(),
				"panic", r,
			)
		}
	}()
	handler(ctx, event)
}
