package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/ddd"

	"github.com/shopspring/decimal"
)

const (
	CreatedEventName         = "order.created"
	StatusUpdatedEventName   = "order.status.updated"
	PaymentRecordedEventName = "order.payment.recorded"
)

// CreatedEvent is raised once when a new order is placed.
type CreatedEvent struct {
	ddd.BaseEvent
	Order Snapshot
}

func NewCreatedEvent(o Snapshot) CreatedEvent {
	return CreatedEvent{
		BaseEvent: ddd.NewBaseEvent(CreatedEventName, o.CreatedAt),
		Order:     o,
	}
}

// StatusUpdatedEvent is raised on every lifecycle transition, including acceptance.
// DriverID is the driver assigned before the transition when the order was cancelled,
// so that driver can still be notified.
type StatusUpdatedEvent struct {
	ddd.BaseEvent
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	DriverID   *kernel.UUID
	Region     string
	OldStatus  Status
	NewStatus  Status
}

func NewStatusUpdatedEvent(o *Order, driverID *kernel.UUID, oldStatus Status, at time.Time) StatusUpdatedEvent {
	return StatusUpdatedEvent{
		BaseEvent:  ddd.NewBaseEvent(StatusUpdatedEventName, at),
		OrderID:    o.id,
		CustomerID: o.customerID,
		DriverID:   copyID(driverID),
		Region:     o.region,
		OldStatus:  oldStatus,
		NewStatus:  o.status,
	}
}

// PaymentRecordedEvent is raised when a completed order is marked paid.
type PaymentRecordedEvent struct {
	ddd.BaseEvent
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	DriverID   *kernel.UUID
	Method     PaymentMethod
	Amount     decimal.Decimal
}

func NewPaymentRecordedEvent(o *Order, at time.Time) PaymentRecordedEvent {
	return PaymentRecordedEvent{
		BaseEvent:  ddd.NewBaseEvent(PaymentRecordedEventName, at),
		OrderID:    o.id,
		CustomerID: o.customerID,
		DriverID:   copyID(o.driverID),
		Method:     o.paymentMethod,
		Amount:     o.price,
	}
}
