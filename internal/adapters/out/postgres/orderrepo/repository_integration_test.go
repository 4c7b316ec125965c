package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/ddd"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate ddd.AggregateRoot) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAggregate() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repository := orderrepo.NewGormOrderRepository(suite.db, tracker)

	testOrder := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	tracker.On("TrackAggregate", testOrder).Once()

	suite.Require().NoError(repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Conflict() {
	ctx := context.Background()
	testOrder := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})
	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	lat, lng := 24.7136, 46.6753
	point, err := kernel.NewOptionalGeoPoint(&lat, &lng)
	suite.Require().NoError(err)
	pickup, err := order.NewAddress("pickup", "King Fahd Rd", point)
	suite.Require().NoError(err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St", nil)
	suite.Require().NoError(err)
	scheduled := now.Add(2 * time.Hour)
	station := kernel.NewUUID()

	ride, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Type:          order.TypeRide,
		CustomerID:    kernel.NewUUID(),
		StationID:     &station,
		Region:        "Riyadh",
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString("42.50"),
		PaymentMethod: order.PaymentCard,
		Ride:          &order.RideDetails{PassengerCount: 3, CarType: order.CarComfort},
		Notes:         "gate 4",
		ScheduledAt:   &scheduled,
	}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, ride))

	got, err := suite.repository.Get(ctx, ride.ID())
	suite.Require().NoError(err)

	want := ride.Snapshot()
	snapshot := got.Snapshot()
	suite.Equal(want.ID, snapshot.ID)
	suite.Equal(order.TypeRide, snapshot.Type)
	suite.Equal(want.CustomerID, snapshot.CustomerID)
	suite.Require().NotNil(snapshot.StationID)
	suite.Equal(station, *snapshot.StationID)
	suite.Nil(snapshot.DriverID)
	suite.Require().True(snapshot.Pickup.HasPoint())
	suite.InDelta(lat, snapshot.Pickup.Point.Lat(), 1e-9)
	suite.InDelta(lng, snapshot.Pickup.Point.Lng(), 1e-9)
	suite.False(snapshot.Dropoff.HasPoint())
	suite.True(want.Price.Equal(snapshot.Price))
	suite.Equal(order.PaymentCard, snapshot.PaymentMethod)
	suite.Equal(order.PaymentPending, snapshot.PaymentStatus)
	suite.Equal(&order.RideDetails{PassengerCount: 3, CarType: order.CarComfort}, snapshot.Ride)
	suite.Nil(snapshot.Parcel)
	suite.Equal("gate 4", snapshot.Notes)
	suite.Require().NotNil(snapshot.ScheduledAt)
	suite.True(scheduled.Equal(*snapshot.ScheduledAt))
	suite.Equal(order.Pending, snapshot.Status)
	suite.True(now.Equal(snapshot.CreatedAt))
	suite.Empty(got.DomainEvents(), "restored orders carry no events")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AcceptPersistsDriver() {
	ctx := context.Background()
	o := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	driverID := kernel.NewUUID()
	expected := o.State()
	suite.Require().NoError(o.Accept(driverID, "riyadh", now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o, expected))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, stored.Status())
	suite.True(stored.IsAssignedTo(driverID))
	suite.True(now.Add(time.Minute).Equal(stored.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleStateConflicts() {
	ctx := context.Background()
	o := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	expected := first.State()
	suite.Require().NoError(first.Accept(kernel.NewUUID(), "Riyadh", now))
	suite.Require().NoError(suite.repository.Update(ctx, first, expected))

	suite.Require().NoError(second.Accept(kernel.NewUUID(), "Riyadh", now))
	err = suite.repository.Update(ctx, second, expected)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_SecondPaymentConflicts() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o := suite.newParcelOrder(customer, "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	expected := o.State()
	suite.Require().NoError(o.Accept(driverID, "Riyadh", now))
	suite.Require().NoError(suite.repository.Update(ctx, o, expected))
	driverActor := kernel.Actor{ID: driverID, Role: kernel.RoleDriver}
	for _, status := range []order.Status{order.OnTheWay, order.PickedUp, order.InProgress, order.Completed} {
		expected = o.State()
		suite.Require().NoError(o.TransitionBy(driverActor, status, now))
		suite.Require().NoError(suite.repository.Update(ctx, o, expected))
	}

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	expected = first.State()
	suite.Require().NoError(first.RecordPayment(kernel.Actor{ID: customer, Role: kernel.RoleCustomer},
		order.PaymentCard, first.Price(), now.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, first, expected))

	suite.Require().NoError(second.RecordPayment(driverActor, order.PaymentCash, second.Price(), now.Add(time.Hour)))
	err = suite.repository.Update(ctx, second, expected)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, stored.PaymentStatus())
	suite.Equal(order.PaymentCard, stored.PaymentMethod())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrderNotFound() {
	o := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	expected := o.State()
	suite.Require().NoError(o.Accept(kernel.NewUUID(), "Riyadh", now))

	err := suite.repository.Update(context.Background(), o, expected)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentAcceptHasOneWinner() {
	ctx := context.Background()
	o := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	const drivers = 10
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for range drivers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.db.Transaction(func(tx *gorm.DB) error {
				repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
				current, err := repo.Get(ctx, o.ID())
				if err != nil {
					return err
				}
				expected := current.State()
				if err := current.Accept(kernel.NewUUID(), "Riyadh", now); err != nil {
					return err
				}
				return repo.Update(ctx, current, expected)
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, errs.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), successes.Load())
	suite.Equal(int32(drivers-1), conflicts.Load())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRemove_HidesOrder() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	o := suite.newParcelOrder(customer, "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	expected := o.State()
	actor, err := kernel.NewActor(customer, kernel.RoleCustomer)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkRemoved(actor, now))
	suite.Require().NoError(suite.repository.Remove(ctx, o, expected))

	_, err = suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	orders, err := suite.repository.ListByCustomer(ctx, customer)
	suite.Require().NoError(err)
	suite.Empty(orders)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCustomer_NewestFirst() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	older := suite.newParcelOrderAt(customer, "Riyadh", now)
	newer := suite.newParcelOrderAt(customer, "Riyadh", now.Add(time.Hour))
	other := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	for _, o := range []*order.Order{older, newer, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	orders, err := suite.repository.ListByCustomer(ctx, customer)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(newer.ID(), orders[0].ID())
	suite.Equal(older.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListPendingInRegion() {
	ctx := context.Background()
	riyadh := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	spaced := suite.newParcelOrder(kernel.NewUUID(), "  RIYADH ")
	jeddah := suite.newParcelOrder(kernel.NewUUID(), "Jeddah")
	taken := suite.newParcelOrder(kernel.NewUUID(), "riyadh")
	for _, o := range []*order.Order{riyadh, spaced, jeddah, taken} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	expected := taken.State()
	suite.Require().NoError(taken.Accept(kernel.NewUUID(), "riyadh", now))
	suite.Require().NoError(suite.repository.Update(ctx, taken, expected))

	orders, err := suite.repository.ListPendingInRegion(ctx, "riyadh", nil)
	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{riyadh.ID(), spaced.ID()}, ids(orders))

	rideType := order.TypeRide
	orders, err = suite.repository.ListPendingInRegion(ctx, "riyadh", &rideType)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByStatus() {
	ctx := context.Background()
	for range 3 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newParcelOrder(kernel.NewUUID(), "Riyadh")))
	}
	accepted := suite.newParcelOrder(kernel.NewUUID(), "Riyadh")
	suite.Require().NoError(suite.repository.Add(ctx, accepted))
	expected := accepted.State()
	suite.Require().NoError(accepted.Accept(kernel.NewUUID(), "Riyadh", now))
	suite.Require().NoError(suite.repository.Update(ctx, accepted, expected))

	counts, err := suite.repository.CountByStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(map[order.Status]int64{order.Pending: 3, order.Accepted: 1}, counts)
}

func (suite *OrderRepositoryIntegrationTestSuite) newParcelOrder(customer kernel.UUID, region string) *order.Order {
	return suite.newParcelOrderAt(customer, region, now)
}

func (suite *OrderRepositoryIntegrationTestSuite) newParcelOrderAt(
	customer kernel.UUID, region string, at time.Time,
) *order.Order {
	pickup, err := order.NewAddress("pickup", "King Fahd Rd", nil)
	suite.Require().NoError(err)
	dropoff, err := order.NewAddress("dropoff", "Olaya St", nil)
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Type:          order.TypeParcel,
		CustomerID:    customer,
		Region:        region,
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         decimal.RequireFromString("50.00"),
		PaymentMethod: order.PaymentCash,
		Parcel:        &order.ParcelDetails{Description: "documents", Weight: decimal.RequireFromString("1.5")},
	}, at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func ids(orders []*order.Order) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID())
	}
	return result
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
