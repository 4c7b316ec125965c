package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/ddd"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

var fixedClock = ports.ClockFunc(func() time.Time { return now })

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type settlementUoWFactory func() commands.SettlementUoW

func (f settlementUoWFactory) Create() commands.SettlementUoW { return f() }

type ratingUoWFactory func() commands.RatingUoW

func (f ratingUoWFactory) Create() commands.RatingUoW { return f() }

type driverStatusUoWFactory func() commands.DriverStatusUoW

func (f driverStatusUoWFactory) Create() commands.DriverStatusUoW { return f() }

type eventLog struct {
	events []ddd.DomainEvent
}

func (l *eventLog) Publish(_ context.Context, events ...ddd.DomainEvent) {
	l.events = append(l.events, events...)
}

// world is a dispatch service backed by the in-memory store.
type world struct {
	uow      *memory.UnitOfWorkFactory
	profiles *memory.ProfileDirectory
	events   *eventLog

	create     commands.CreateOrderCommandHandler
	accept     commands.AcceptOrderCommandHandler
	transition commands.TransitionOrderCommandHandler
	remove     commands.RemoveOrderCommandHandler
	rate       commands.RateOrderCommandHandler
	pay        commands.RecordPaymentCommandHandler
	setStatus  commands.SetDriverStatusCommandHandler
}

func newWorld(t *testing.T) *world {
	t.Helper()
	store := memory.NewStore()
	events := &eventLog{}
	f := memory.NewUnitOfWorkFactory(store, events)

	orders := orderUoWFactory(func() commands.OrderUoW { return f.Create() })
	return &world{
		uow:        f,
		profiles:   memory.NewProfileDirectory(store),
		events:     events,
		create:     commands.NewCreateOrderCommandHandler(orders, memory.NewProfileDirectory(store), fixedClock, decimal.NewFromInt(5)),
		accept:     commands.NewAcceptOrderCommandHandler(orders, memory.NewProfileDirectory(store), fixedClock),
		transition: commands.NewTransitionOrderCommandHandler(settlementUoWFactory(func() commands.SettlementUoW { return f.Create() }), fixedClock, nil),
		remove:     commands.NewRemoveOrderCommandHandler(orders, fixedClock),
		rate:       commands.NewRateOrderCommandHandler(ratingUoWFactory(func() commands.RatingUoW { return f.Create() }), fixedClock),
		pay:        commands.NewRecordPaymentCommandHandler(orders, fixedClock, nil),
		setStatus: commands.NewSetDriverStatusCommandHandler(
			driverStatusUoWFactory(func() commands.DriverStatusUoW { return f.Create() }), memory.NewProfileDirectory(store), fixedClock),
	}
}

func (w *world) customer(region string) kernel.UUID {
	id := kernel.NewUUID()
	w.profiles.Put(kernel.Profile{ID: id, Role: kernel.RoleCustomer, Name: "Customer", Region: region, Phone: "+966500000000"})
	return id
}

func (w *world) driver(region string) kernel.UUID {
	id := kernel.NewUUID()
	w.profiles.Put(kernel.Profile{ID: id, Role: kernel.RoleDriver, Name: "Driver", Region: region})
	return id
}

func parcelDraft(t *testing.T, price string) commands.OrderDraft {
	t.Helper()
	point, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)
	pickup, err := order.NewAddress("pickup", "King Fahd Rd, Riyadh", &point)
	require.NoError(t, err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St, Riyadh", nil)
	require.NoError(t, err)

	return commands.OrderDraft{
		Type:          "parcel",
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString(price),
		PaymentMethod: "cash",
		Parcel:        &order.ParcelDetails{Description: "documents", Weight: decimal.RequireFromString("1.5")},
	}
}

func (w *world) placeOrder(t *testing.T, customer kernel.UUID, price string) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, parcelDraft(t, price))
	require.NoError(t, err)
	o, err := w.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (w *world) acceptOrder(t *testing.T, orderID, driverID kernel.UUID) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewAcceptOrderCommand(orderID, driverID)
	require.NoError(t, err)
	return w.accept.Handle(t.Context(), cmd)
}

func (w *world) driverMoves(t *testing.T, orderID, driverID kernel.UUID, target order.Status) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(orderID, kernel.Actor{ID: driverID, Role: kernel.RoleDriver}, target)
	require.NoError(t, err)
	return w.transition.Handle(t.Context(), cmd)
}

func (w *world) complete(t *testing.T, orderID, driverID kernel.UUID) {
	t.Helper()
	for _, s := range []order.Status{order.OnTheWay, order.PickedUp, order.InProgress, order.Completed} {
		_, err := w.driverMoves(t, orderID, driverID, s)
		require.NoError(t, err)
	}
}

func (w *world) eventNames() []string {
	names := make([]string, 0, len(w.events.events))
	for _, e := range w.events.events {
		names = append(names, e.EventName())
	}
	return names
}
