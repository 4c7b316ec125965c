package memory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/ddd"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ddd.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ddd.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName())
	}
	return names
}

func newOrder(t *testing.T, customer kernel.UUID, region string) *order.Order {
	t.Helper()
	pickup, err := order.NewAddress("pickup", "King Fahd Rd", nil)
	require.NoError(t, err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St", nil)
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Type:          order.TypeParcel,
		CustomerID:    customer,
		Region:        region,
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString("50.00"),
		PaymentMethod: order.PaymentCash,
		Parcel:        &order.ParcelDetails{Description: "box", Weight: decimal.NewFromInt(2)},
	}, now)
	require.NoError(t, err)
	return o
}

func addOrder(t *testing.T, f *memory.UnitOfWorkFactory, o *order.Order) {
	t.Helper()
	ctx := t.Context()
	uow := f.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))
}

func TestUnitOfWork_PublishesAfterCommit(t *testing.T) {
	ctx := t.Context()
	pub := &recordingPublisher{}
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), pub)

	uow := f.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, kernel.NewUUID(), "Riyadh")))
	assert.Empty(t, pub.names())

	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, []string{order.CreatedEventName}, pub.names())
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoActiveTransaction)
}

func TestUnitOfWork_RollbackDiscardsChangesAndEvents(t *testing.T) {
	ctx := t.Context()
	pub := &recordingPublisher{}
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), pub)
	o := newOrder(t, kernel.NewUUID(), "Riyadh")

	uow := f.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	_, err := f.Create().OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, pub.names())
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := t.Context()
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	customer := kernel.NewUUID()
	o := newOrder(t, customer, "Riyadh")
	addOrder(t, f, o)

	repo := f.Create().OrderRepository()
	got, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.Snapshot(), got.Snapshot())

	mine, err := repo.ListByCustomer(ctx, customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	pending, err := repo.ListPendingInRegion(ctx, "RIYADH", nil)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	ride := order.TypeRide
	rides, err := repo.ListPendingInRegion(ctx, "riyadh", &ride)
	require.NoError(t, err)
	assert.Empty(t, rides)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[order.Pending])
}

func TestOrderRepository_Update_StaleStateConflicts(t *testing.T) {
	ctx := t.Context()
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	o := newOrder(t, kernel.NewUUID(), "Riyadh")
	addOrder(t, f, o)

	first, err := f.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := f.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)

	expected := first.State()
	require.NoError(t, first.Accept(kernel.NewUUID(), "riyadh", now))
	require.NoError(t, f.Create().OrderRepository().Update(ctx, first, expected))

	require.NoError(t, second.Accept(kernel.NewUUID(), "riyadh", now))
	err = f.Create().OrderRepository().Update(ctx, second, expected)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestOrderRepository_Update_PaymentStatusIsCompared(t *testing.T) {
	ctx := t.Context()
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	customer := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o := newOrder(t, customer, "Riyadh")
	addOrder(t, f, o)

	repo := f.Create().OrderRepository()
	expected := o.State()
	require.NoError(t, o.Accept(driverID, "riyadh", now))
	require.NoError(t, repo.Update(ctx, o, expected))
	driverActor := kernel.Actor{ID: driverID, Role: kernel.RoleDriver}
	for _, status := range []order.Status{order.OnTheWay, order.PickedUp, order.InProgress, order.Completed} {
		expected = o.State()
		require.NoError(t, o.TransitionBy(driverActor, status, now))
		require.NoError(t, repo.Update(ctx, o, expected))
	}

	first, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	expected = first.State()
	require.NoError(t, first.RecordPayment(kernel.Actor{ID: customer, Role: kernel.RoleCustomer}, order.PaymentWallet, first.Price(), now))
	require.NoError(t, repo.Update(ctx, first, expected))

	require.NoError(t, second.RecordPayment(driverActor, order.PaymentCash, second.Price(), now))
	require.ErrorIs(t, repo.Update(ctx, second, expected), errs.ErrConflict)

	stored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, stored.PaymentStatus())
	assert.Equal(t, order.PaymentWallet, stored.PaymentMethod())
}

func TestOrderRepository_ConcurrentAccept(t *testing.T) {
	ctx := t.Context()
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	o := newOrder(t, kernel.NewUUID(), "Riyadh")
	addOrder(t, f, o)

	const drivers = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for range drivers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			current, err := f.Create().OrderRepository().Get(ctx, o.ID())
			if err != nil {
				return
			}
			expected := current.State()
			if err = current.Accept(kernel.NewUUID(), "riyadh", now); err != nil {
				if errors.Is(err, errs.ErrConflict) {
					conflicts.Add(1)
				}
				return
			}
			err = f.Create().OrderRepository().Update(ctx, current, expected)
			if err == nil {
				successes.Add(1)
			} else if errors.Is(err, errs.ErrConflict) {
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(drivers-1), conflicts.Load())

	stored, err := f.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, stored.Status())
	assert.NotNil(t, stored.DriverID())
}

func TestOrderRepository_Remove(t *testing.T) {
	ctx := t.Context()
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	customer := kernel.NewUUID()
	o := newOrder(t, customer, "Riyadh")
	addOrder(t, f, o)

	expected := o.State()
	require.NoError(t, o.MarkRemoved(kernel.Actor{ID: customer, Role: kernel.RoleCustomer}, now))
	require.NoError(t, f.Create().OrderRepository().Remove(ctx, o, expected))

	_, err := f.Create().OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestEarningRepository_CreditIsIdempotent(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore(), nil).Create().EarningRepository()
	driverID, orderID := kernel.NewUUID(), kernel.NewUUID()

	first, err := earning.NewEarning(driverID, orderID, decimal.RequireFromString("50.00"), now)
	require.NoError(t, err)
	second, err := earning.NewEarning(driverID, orderID, decimal.RequireFromString("50.00"), now)
	require.NoError(t, err)

	created, err := repo.Credit(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repo.Credit(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	list, err := repo.ListByDriver(ctx, driverID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	sum, err := repo.SumBetween(ctx, driverID, now, now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("50.00")))

	sum, err = repo.SumBetween(ctx, driverID, now.Add(time.Second), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestRatingRepository_SecondRatingConflicts(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore(), nil).Create().RatingRepository()
	orderID := kernel.NewUUID()

	r, err := rating.NewRating(orderID, kernel.NewUUID(), kernel.NewUUID(), 5, "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, r))

	exists, err := repo.ExistsForOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, exists)

	again, err := rating.NewRating(orderID, kernel.NewUUID(), kernel.NewUUID(), 4, "", now)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Add(ctx, again), errs.ErrConflict)
}

func TestDriverStatusRepository(t *testing.T) {
	ctx := t.Context()
	pub := &recordingPublisher{}
	f := memory.NewUnitOfWorkFactory(memory.NewStore(), pub)
	driverID := kernel.NewUUID()
	profile := kernel.Profile{ID: driverID, Role: kernel.RoleDriver, Region: "Riyadh"}

	status, err := f.Create().DriverStatusRepository().Get(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, driver.Offline, status.Availability())

	uow := f.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, status.Change(profile, driver.Available, now))
	require.NoError(t, uow.DriverStatusRepository().Save(ctx, status))
	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, []string{driver.StatusUpdatedEventName}, pub.names())

	idle, err := f.Create().DriverStatusRepository().ListIdle(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, idle, 1)

	idle, err = f.Create().DriverStatusRepository().ListIdle(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, idle)
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewNotificationRepository(memory.NewStore())
	user := kernel.NewUUID()

	for i := range 3 {
		require.NoError(t, repo.Add(ctx, ports.InboxEntry{
			ID:        kernel.NewUUID(),
			UserID:    user,
			Channel:   "customer." + user.String(),
			Event:     order.StatusUpdatedEventName,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Add(ctx, ports.InboxEntry{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), CreatedAt: now}))

	entries, err := repo.ListByUser(ctx, user, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, now.Add(2*time.Minute), entries[0].CreatedAt)
}

func TestProfileDirectory(t *testing.T) {
	dir := memory.NewProfileDirectory(memory.NewStore())
	p := kernel.Profile{ID: kernel.NewUUID(), Role: kernel.RoleCustomer, Region: "Riyadh"}
	dir.Put(p)

	got, err := dir.Get(t.Context(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = dir.Get(t.Context(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
