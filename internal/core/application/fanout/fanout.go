// Package fanout turns committed domain events into channel notifications and hands them to
// every configured transport. Delivery is best effort and asynchronous: each transport drains
// its own bounded queue on a worker goroutine, so a slow or failing transport never holds up
// the command that raised the event or the other transports.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/ddd"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	DefaultQueueSize       = 256
	DefaultDeliveryTimeout = 10 * time.Second
)

var ErrStopped = errors.New("fanout is stopped")

// Subscriber is the event source the fan-out attaches to.
type Subscriber interface {
	Subscribe(eventName string, handler func(ctx context.Context, event ddd.DomainEvent))
}

type delivery struct {
	channels []string
	event    string
	message  string
	payload  map[string]any
}

type job struct {
	ctx     context.Context
	channel string
	n       ports.Notification
}

// lane is the queue and worker of one transport.
type lane struct {
	transport ports.ChannelPublisher
	queue     chan job
}

type Option func(*Fanout)

// WithQueueSize bounds the notifications buffered per transport. Notifications arriving at a
// full queue are dropped and logged.
func WithQueueSize(size int) Option {
	return func(f *Fanout) {
		if size > 0 {
			f.queueSize = size
		}
	}
}

// WithDeliveryTimeout limits a single Publish call of a transport.
func WithDeliveryTimeout(timeout time.Duration) Option {
	return func(f *Fanout) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

type Fanout struct {
	lanes     []*lane
	clock     ports.Clock
	logger    *slog.Logger
	queueSize int
	timeout   time.Duration

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func New(logger *slog.Logger, clock ports.Clock, transports []ports.ChannelPublisher, opts ...Option) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = ports.SystemClock
	}
	f := &Fanout{
		clock:     clock,
		logger:    logger.With("component", "Fanout"),
		queueSize: DefaultQueueSize,
		timeout:   DefaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	for _, t := range transports {
		f.lanes = append(f.lanes, &lane{transport: t, queue: make(chan job, f.queueSize)})
	}
	return f
}

// Register subscribes the fan-out to every event it knows how to announce.
func (f *Fanout) Register(sub Subscriber) {
	sub.Subscribe(order.CreatedEventName, f.Handle)
	sub.Subscribe(order.StatusUpdatedEventName, f.Handle)
	sub.Subscribe(order.PaymentRecordedEventName, f.Handle)
	sub.Subscribe(driver.StatusUpdatedEventName, f.Handle)
}

// Start launches one worker per transport.
func (f *Fanout) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return ErrStopped
	}
	if f.started {
		return nil
	}
	f.startWorkers()
	f.logger.Info("Fanout started", "transports", len(f.lanes), "queue_size", f.queueSize)
	return nil
}

func (f *Fanout) startWorkers() {
	f.started = true
	for _, l := range f.lanes {
		f.wg.Add(1)
		go f.work(l)
	}
}

// Stop refuses new notifications and waits until every queued one has been handed to its
// transport.
func (f *Fanout) Stop() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	if !f.started {
		f.startWorkers()
	}
	for _, l := range f.lanes {
		close(l.queue)
	}
	f.mu.Unlock()

	f.wg.Wait()
	f.logger.Info("Fanout stopped")
}

// Handle queues the notifications of one event for every transport and returns without
// waiting for delivery. Unknown events are ignored.
func (f *Fanout) Handle(ctx context.Context, event ddd.DomainEvent) {
	d, ok := f.route(event)
	if !ok {
		f.logger.DebugContext(ctx, "event has no channels", "event", event.EventName())
		return
	}

	n := ports.Notification{
		Event:     d.event,
		Payload:   d.payload,
		Message:   d.message,
		Timestamp: f.clock.Now().UTC().Format(TimestampLayout),
	}
	// Delivery outlives the request that committed the event.
	detached := context.WithoutCancel(ctx)

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.stopped {
		f.logger.WarnContext(ctx, "notification dropped after stop", "event", d.event)
		return
	}
	for _, channel := range d.channels {
		for _, l := range f.lanes {
			select {
			case l.queue <- job{ctx: detached, channel: channel, n: n}:
			default:
				f.logger.WarnContext(ctx, "notification dropped, transport queue is full",
					"channel", channel,
					"event", d.event,
					"transport", transportName(l.transport),
				)
			}
		}
	}
}

func (f *Fanout) work(l *lane) {
	defer f.wg.Done()
	for j := range l.queue {
		f.deliver(l.transport, j)
	}
}

func (f *Fanout) deliver(t ports.ChannelPublisher, j job) {
	ctx, cancel := context.WithTimeout(j.ctx, f.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			f.logger.ErrorContext(ctx, "notification transport panicked",
				"channel", j.channel,
				"event", j.n.Event,
				"transport", transportName(t),
				"panic", r,
			)
		}
	}()

	if err := t.Publish(ctx, j.channel, j.n); err != nil {
		f.logger.ErrorContext(ctx, "notification delivery failed",
			"channel", j.channel,
			"event", j.n.Event,
			"transport", transportName(t),
			"error", err,
		)
	}
}

func transportName(t ports.ChannelPublisher) string {
	return fmt.Sprintf("%T", t)
}

func (f *Fanout) route(event ddd.DomainEvent) (delivery, bool) {
	switch e := event.(type) {
	case order.CreatedEvent:
		return delivery{
			channels: []string{OrdersChannel(e.Order.Region), DriversChannel(e.Order.Region)},
			event:    order.CreatedEventName,
			message:  order.CreatedMessage,
			payload:  createdPayload(e.Order),
		}, true
	case order.StatusUpdatedEvent:
		channels := []string{CustomerChannel(e.CustomerID)}
		if e.DriverID != nil {
			channels = append(channels, DriverChannel(*e.DriverID))
		}
		return delivery{
			channels: channels,
			event:    order.StatusUpdatedEventName,
			message:  order.StatusMessage(e.NewStatus),
			payload:  statusPayload(e),
		}, true
	case order.PaymentRecordedEvent:
		channels := []string{CustomerChannel(e.CustomerID)}
		if e.DriverID != nil {
			channels = append(channels, DriverChannel(*e.DriverID))
		}
		return delivery{
			channels: channels,
			event:    order.PaymentRecordedEventName,
			message:  order.PaymentRecordedMessage,
			payload: map[string]any{
				"order_id":       e.OrderID.String(),
				"payment_method": string(e.Method),
				"amount":         e.Amount.StringFixed(2),
				"payment_status": string(order.PaymentPaid),
			},
		}, true
	case driver.StatusUpdatedEvent:
		return delivery{
			channels: []string{DriversChannel(e.Region), AdminDriversChannel},
			event:    driver.StatusUpdatedEventName,
			message:  driver.AvailabilityMessage(e.New),
			payload: map[string]any{
				"driver_id":   e.DriverID.String(),
				"driver_name": e.DriverName,
				"region":      e.Region,
				"old_status":  e.Old.String(),
				"new_status":  e.New.String(),
			},
		}, true
	}
	return delivery{}, false
}

func createdPayload(o order.Snapshot) map[string]any {
	payload := map[string]any{
		"order_id":       o.ID.String(),
		"type":           o.Type.String(),
		"region":         o.Region,
		"pickup":         addressPayload(o.Pickup),
		"dropoff":        addressPayload(o.Dropoff),
		"price":          o.Price.StringFixed(2),
		"payment_method": string(o.PaymentMethod),
		"status":         o.Status.String(),
		"created_at":     o.CreatedAt.UTC().Format(TimestampLayout),
	}
	if o.ScheduledAt != nil {
		payload["scheduled_at"] = o.ScheduledAt.UTC().Format(TimestampLayout)
	}
	return payload
}

func addressPayload(a order.Address) map[string]any {
	m := map[string]any{"address": a.Line}
	if a.HasPoint() {
		m["latitude"] = a.Point.Lat()
		m["longitude"] = a.Point.Lng()
	}
	return m
}

func statusPayload(e order.StatusUpdatedEvent) map[string]any {
	payload := map[string]any{
		"order_id":    e.OrderID.String(),
		"customer_id": e.CustomerID.String(),
		"old_status":  e.OldStatus.String(),
		"new_status":  e.NewStatus.String(),
	}
	if e.DriverID != nil {
		payload["driver_id"] = e.DriverID.String()
	}
	return payload
}
