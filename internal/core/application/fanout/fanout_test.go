package fanout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

type delivered struct {
	channel string
	n       ports.Notification
}

type recorder struct {
	mu   sync.Mutex
	sent []delivered
}

func (r *recorder) Publish(_ context.Context, channel string, n ports.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, delivered{channel: channel, n: n})
	return nil
}

func (r *recorder) channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, d := range r.sent {
		out = append(out, d.channel)
	}
	return out
}

type MockChannelPublisher struct{ mock.Mock }

func (m *MockChannelPublisher) Publish(ctx context.Context, channel string, n ports.Notification) error {
	args := m.Called(ctx, channel, n)
	return args.Error(0)
}

func newOrder(t *testing.T, customer kernel.UUID) *order.Order {
	t.Helper()
	point, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)
	pickup, err := order.NewAddress("pickup", "King Fahd Rd", &point)
	require.NoError(t, err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St", nil)
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Type:          order.TypeParcel,
		CustomerID:    customer,
		Region:        "Riyadh",
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString("50"),
		PaymentMethod: order.PaymentCash,
		Parcel:        &order.ParcelDetails{Description: "box", Weight: decimal.NewFromInt(1)},
	}, now)
	require.NoError(t, err)
	return o
}

func newFanout(t *testing.T, transports ...ports.ChannelPublisher) (*fanout.Fanout, *eventbus.Bus) {
	t.Helper()
	return newFanoutWith(t, transports)
}

func newFanoutWith(t *testing.T, transports []ports.ChannelPublisher, opts ...fanout.Option) (*fanout.Fanout, *eventbus.Bus) {
	t.Helper()
	bus := eventbus.NewBus(nil)
	f := fanout.New(nil, ports.ClockFunc(func() time.Time { return now.Add(1500 * time.Millisecond) }), transports, opts...)
	f.Register(bus)
	require.NoError(t, f.Start())
	t.Cleanup(f.Stop)
	return f, bus
}

func TestFanout_OrderCreated(t *testing.T) {
	rec := &recorder{}
	f, bus := newFanout(t, rec)
	o := newOrder(t, kernel.NewUUID())

	bus.Publish(t.Context(), o.DomainEvents()...)
	f.Stop()

	assert.Equal(t, []string{"orders.riyadh", "drivers.riyadh"}, rec.channels())
	n := rec.sent[0].n
	assert.Equal(t, order.CreatedEventName, n.Event)
	assert.Equal(t, order.CreatedMessage, n.Message)
	assert.Equal(t, "2025-09-12T10:00:01.500Z", n.Timestamp)
	assert.Equal(t, "50.00", n.Payload["price"])
	assert.Equal(t, o.ID().String(), n.Payload["order_id"])
}

func TestFanout_StatusUpdated(t *testing.T) {
	customer, driverID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("accepted goes to customer and driver", func(t *testing.T) {
		rec := &recorder{}
		f, bus := newFanout(t, rec)
		o := newOrder(t, customer)
		o.ClearDomainEvents()
		require.NoError(t, o.Accept(driverID, "riyadh", now))

		bus.Publish(t.Context(), o.DomainEvents()...)
		f.Stop()

		assert.Equal(t, []string{fanout.CustomerChannel(customer), fanout.DriverChannel(driverID)}, rec.channels())
		assert.Equal(t, order.StatusMessage(order.Accepted), rec.sent[0].n.Message)
		assert.Equal(t, "accepted", rec.sent[0].n.Payload["new_status"])
	})

	t.Run("cancelled by driver still reaches that driver", func(t *testing.T) {
		rec := &recorder{}
		f, bus := newFanout(t, rec)
		o := newOrder(t, customer)
		require.NoError(t, o.Accept(driverID, "riyadh", now))
		o.ClearDomainEvents()
		require.NoError(t, o.TransitionBy(kernel.Actor{ID: driverID, Role: kernel.RoleDriver}, order.Cancelled, now))

		bus.Publish(t.Context(), o.DomainEvents()...)
		f.Stop()

		assert.Equal(t, []string{fanout.CustomerChannel(customer), fanout.DriverChannel(driverID)}, rec.channels())
		assert.Equal(t, order.StatusMessage(order.Cancelled), rec.sent[1].n.Message)
	})
}

func TestFanout_PaymentRecorded(t *testing.T) {
	customer, driverID := kernel.NewUUID(), kernel.NewUUID()
	rec := &recorder{}
	f, bus := newFanout(t, rec)
	o := newOrder(t, customer)
	require.NoError(t, o.Accept(driverID, "riyadh", now))
	driverActor := kernel.Actor{ID: driverID, Role: kernel.RoleDriver}
	for _, s := range []order.Status{order.OnTheWay, order.PickedUp, order.InProgress, order.Completed} {
		require.NoError(t, o.TransitionBy(driverActor, s, now))
	}
	o.ClearDomainEvents()
	require.NoError(t, o.RecordPayment(driverActor, order.PaymentWallet, o.Price(), now))

	bus.Publish(t.Context(), o.DomainEvents()...)
	f.Stop()

	assert.Equal(t, []string{fanout.CustomerChannel(customer), fanout.DriverChannel(driverID)}, rec.channels())
	n := rec.sent[0].n
	assert.Equal(t, order.PaymentRecordedEventName, n.Event)
	assert.Equal(t, order.PaymentRecordedMessage, n.Message)
	assert.Equal(t, "wallet", n.Payload["payment_method"])
	assert.Equal(t, o.Price().StringFixed(2), n.Payload["amount"])
	assert.Equal(t, "paid", n.Payload["payment_status"])
}

func TestFanout_DriverStatusUpdated(t *testing.T) {
	rec := &recorder{}
	f, bus := newFanout(t, rec)
	driverID := kernel.NewUUID()
	status, err := driver.NewStatus(driverID)
	require.NoError(t, err)
	require.NoError(t, status.Change(kernel.Profile{ID: driverID, Role: kernel.RoleDriver, Name: "Ali", Region: "Riyadh"}, driver.Busy, now))

	bus.Publish(t.Context(), status.DomainEvents()...)
	f.Stop()

	assert.Equal(t, []string{"drivers.riyadh", fanout.AdminDriversChannel}, rec.channels())
	assert.Equal(t, driver.AvailabilityMessage(driver.Busy), rec.sent[0].n.Message)
	assert.Equal(t, "offline", rec.sent[0].n.Payload["old_status"])
}

func TestFanout_TransportFailureIsSuppressed(t *testing.T) {
	failing := new(MockChannelPublisher)
	failing.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	rec := &recorder{}
	f, bus := newFanout(t, failing, rec)

	assert.NotPanics(t, func() {
		bus.Publish(t.Context(), newOrder(t, kernel.NewUUID()).DomainEvents()...)
	})
	f.Stop()
	assert.Len(t, rec.channels(), 2)
	failing.AssertNumberOfCalls(t, "Publish", 2)
}

func TestChannelsFor(t *testing.T) {
	id := kernel.NewUUID()

	assert.Equal(t, []string{fanout.CustomerChannel(id)}, fanout.ChannelsFor(kernel.Profile{ID: id, Role: kernel.RoleCustomer}))
	assert.Equal(t,
		[]string{fanout.DriverChannel(id), "orders.riyadh", "drivers.riyadh"},
		fanout.ChannelsFor(kernel.Profile{ID: id, Role: kernel.RoleDriver, Region: " Riyadh "}),
	)
	assert.Equal(t, []string{fanout.AdminDriversChannel}, fanout.ChannelsFor(kernel.Profile{ID: id, Role: kernel.RoleAdmin}))
	assert.Empty(t, fanout.ChannelsFor(kernel.Profile{ID: id, Role: kernel.RoleUnknown}))

	user, ok := fanout.UserFromChannel(fanout.DriverChannel(id))
	require.True(t, ok)
	assert.Equal(t, id, user)
	_, ok = fanout.UserFromChannel("orders.riyadh")
	assert.False(t, ok)
}

// blockingTransport holds every Publish until release is closed.
type blockingTransport struct {
	release chan struct{}
	rec     recorder
}

func (b *blockingTransport) Publish(ctx context.Context, channel string, n ports.Notification) error {
	<-b.release
	return b.rec.Publish(ctx, channel, n)
}

func TestFanout_SlowTransportDoesNotBlockPublisher(t *testing.T) {
	slow := &blockingTransport{release: make(chan struct{})}
	fast := &recorder{}
	f, bus := newFanout(t, slow, fast)

	published := make(chan struct{})
	go func() {
		bus.Publish(t.Context(), newOrder(t, kernel.NewUUID()).DomainEvents()...)
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("publishing waited for a blocked transport")
	}
	require.Eventually(t, func() bool { return len(fast.channels()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, slow.rec.channels())

	close(slow.release)
	f.Stop()
	assert.Equal(t, []string{"orders.riyadh", "drivers.riyadh"}, slow.rec.channels())
}

func TestFanout_SlowTransportDoesNotDelayCreateOrder(t *testing.T) {
	slow := &blockingTransport{release: make(chan struct{})}
	defer close(slow.release)
	bus := eventbus.NewBus(nil)
	f := fanout.New(nil, nil, []ports.ChannelPublisher{slow})
	f.Register(bus)
	require.NoError(t, f.Start())
	t.Cleanup(f.Stop)

	store := memory.NewStore()
	profiles := memory.NewProfileDirectory(store)
	customer := kernel.NewUUID()
	profiles.Put(kernel.Profile{ID: customer, Role: kernel.RoleCustomer, Name: "Customer", Region: "Riyadh"})
	uow := memory.NewUnitOfWorkFactory(store, bus)
	handler := commands.NewCreateOrderCommandHandler(
		createOrderUoWFactory(func() commands.OrderUoW { return uow.Create() }),
		profiles, ports.ClockFunc(func() time.Time { return now }), decimal.NewFromInt(5))

	point, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)
	pickup, err := order.NewAddress("pickup", "King Fahd Rd", &point)
	require.NoError(t, err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St", nil)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, commands.OrderDraft{
		Type:          "parcel",
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString("50"),
		PaymentMethod: "cash",
		Parcel:        &order.ParcelDetails{Description: "box", Weight: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)

	started := time.Now()
	_, err = handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
}

type createOrderUoWFactory func() commands.OrderUoW

func (f createOrderUoWFactory) Create() commands.OrderUoW { return f() }

// contextTransport records the context error each Publish observed once its context ended.
type contextTransport struct {
	errs chan error
}

func (c *contextTransport) Publish(ctx context.Context, _ string, _ ports.Notification) error {
	<-ctx.Done()
	c.errs <- ctx.Err()
	return ctx.Err()
}

func TestFanout_DeliveryOutlivesRequestContext(t *testing.T) {
	transport := &contextTransport{errs: make(chan error, 2)}
	f, bus := newFanoutWith(t, []ports.ChannelPublisher{transport}, fanout.WithDeliveryTimeout(50*time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	bus.Publish(ctx, newOrder(t, kernel.NewUUID()).DomainEvents()...)
	cancel()
	f.Stop()

	require.Len(t, transport.errs, 2)
	assert.ErrorIs(t, <-transport.errs, context.DeadlineExceeded)
	assert.ErrorIs(t, <-transport.errs, context.DeadlineExceeded)
}

func TestFanout_FullQueueDropsNotifications(t *testing.T) {
	rec := &recorder{}
	bus := eventbus.NewBus(nil)
	f := fanout.New(nil, nil, []ports.ChannelPublisher{rec}, fanout.WithQueueSize(1))
	f.Register(bus)

	// Not started: the single slot fills with the first channel, the second is dropped.
	bus.Publish(t.Context(), newOrder(t, kernel.NewUUID()).DomainEvents()...)
	f.Stop()

	assert.Equal(t, []string{"orders.riyadh"}, rec.channels())
}

func TestFanout_StopIsFinal(t *testing.T) {
	rec := &recorder{}
	f, bus := newFanout(t, rec)
	f.Stop()

	bus.Publish(t.Context(), newOrder(t, kernel.NewUUID()).DomainEvents()...)

	assert.Empty(t, rec.channels())
	assert.ErrorIs(t, f.Start(), fanout.ErrStopped)
}
