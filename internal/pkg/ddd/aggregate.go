// Package ddd holds the small building blocks shared by aggregates:
// domain event recording and the event contract consumed by the event bus.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate after a state change was applied.
type DomainEvent interface {
	EventID() uuid.UUID
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot is implemented by aggregates that record domain events.
// Units of work collect the events of tracked aggregates after commit.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEvent carries the identity and timestamp every domain event shares.
type BaseEvent struct {
	id         uuid.UUID
	name       string
	occurredAt time.Time
}

func NewBaseEvent(name string, occurredAt time.Time) BaseEvent {
	return BaseEvent{id: uuid.New(), name: name, occurredAt: occurredAt}
}

func (e BaseEvent) EventID() uuid.UUID {
	return e.id
}

func (e BaseEvent) EventName() string {
	return e.name
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// BaseAggregate is embedded by aggregates to record events.
type BaseAggregate struct {
	domainEvents []DomainEvent
}

func (a *BaseAggregate) RaiseDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns a copy of the recorded events.
func (a *BaseAggregate) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(a.domainEvents))
	copy(events, a.domainEvents)
	return events
}

func (a *BaseAggregate) ClearDomainEvents() {
	a.domainEvents = nil
}
