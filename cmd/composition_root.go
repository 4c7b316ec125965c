package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/inbox"
	"dispatch/internal/adapters/out/pgnotify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/profilerepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/adapters/out/twilio"
	"dispatch/internal/adapters/out/websocket"
	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      ports.Clock
	bus        *eventbus.Bus
	uowFactory *postgres.GormUnitOfWorkFactory
	profiles   *profilerepo.GormProfileRepository
	inbox      *notificationrepo.GormNotificationRepository
	jwt        *auth.JWTService
	hub        *websocket.Hub
	fanout     *fanout.Fanout
	fare       services.FareStrategy
	closers    []func() error
}

// NewCompositionRoot wires persistence, the event bus and every notification transport.
// RabbitMQ, pg_notify and Twilio are enabled only when configured.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	fare, err := services.NewBaseDistanceFare(configs.FareBase, configs.FarePerKm)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:  configs,
		gormDB:   gormDB,
		logger:   logger,
		clock:    ports.SystemClock,
		bus:      eventbus.NewBus(logger),
		profiles: profilerepo.NewGormProfileRepository(gormDB),
		inbox:    notificationrepo.NewGormNotificationRepository(gormDB),
		jwt:      auth.NewJWTService(configs.JWTSecret),
		fare:     fare,
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.bus)
	c.hub = websocket.NewHub(c.jwt, c.profiles, logger)

	transports, err := c.transports(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.fanout = fanout.New(logger, c.clock, transports)
	c.fanout.Register(c.bus)

	return c, nil
}

func (c *CompositionRoot) transports(ctx context.Context) ([]ports.ChannelPublisher, error) {
	transports := []ports.ChannelPublisher{
		c.hub,
		inbox.NewPublisher(c.inbox, c.clock),
	}

	if c.configs.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(c.configs.RabbitMQURL, c.configs.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher.Close)
		transports = append(transports, publisher)
		c.logger.InfoContext(ctx, "RabbitMQ transport enabled", "exchange", c.configs.RabbitMQExchange)
	}

	if c.configs.PGNotifyChannel != "" {
		pool, err := pgnotify.NewPool(ctx, c.configs.DSN())
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() error { pool.Close(); return nil })
		transports = append(transports, pgnotify.NewPublisher(pool, c.configs.PGNotifyChannel))
		c.logger.InfoContext(ctx, "pg_notify transport enabled", "channel", c.configs.PGNotifyChannel)
	}

	if c.configs.TwilioAccountSID != "" {
		transports = append(transports, twilio.NewSMSPublisher(
			c.configs.TwilioAccountSID, c.configs.TwilioAuthToken, c.configs.TwilioFromNumber, c.profiles))
		c.logger.InfoContext(ctx, "Twilio SMS transport enabled")
	}

	return transports, nil
}

// Close releases the transport connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.profiles, c.clock, c.configs.MinFare)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.profiles, c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRemoveOrderCommandHandler() commands.RemoveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f, c.clock, c.logger)
}

func (c *CompositionRoot) CreateSetDriverStatusCommandHandler() commands.SetDriverStatusCommandHandler {
	var f commands.DriverStatusUoWFactory = FuncDriverStatusUoWFactory(func() commands.DriverStatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverStatusCommandHandler(f, c.profiles, c.clock)
}

// Query handlers read through repositories of a unit of work that is never begun, so every
// call runs on its own connection outside a transaction.
func (c *CompositionRoot) readRepositories() ports.UnitOfWork {
	return c.uowFactory.Create()
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readRepositories().OrderRepository(), c.profiles)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.readRepositories().OrderRepository())
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(
		c.readRepositories().OrderRepository(), c.readRepositories().DriverStatusRepository(), c.profiles)
}

func (c *CompositionRoot) CreateListDriverEarningsQueryHandler() queries.ListDriverEarningsQueryHandler {
	return queries.NewListDriverEarningsQueryHandler(c.readRepositories().EarningRepository())
}

func (c *CompositionRoot) CreateGetEarningsSummaryQueryHandler() queries.GetEarningsSummaryQueryHandler {
	return queries.NewGetEarningsSummaryQueryHandler(c.readRepositories().EarningRepository(), c.clock)
}

func (c *CompositionRoot) CreateGetDriverStatusQueryHandler() queries.GetDriverStatusQueryHandler {
	return queries.NewGetDriverStatusQueryHandler(c.readRepositories().DriverStatusRepository())
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.inbox)
}

func (c *CompositionRoot) CreateQuoteFareQueryHandler() queries.QuoteFareQueryHandler {
	return queries.NewQuoteFareQueryHandler(c.fare)
}

func (c *CompositionRoot) CreateGetOrderReportQueryHandler() queries.GetOrderReportQueryHandler {
	return queries.NewGetOrderReportQueryHandler(c.readRepositories().OrderRepository())
}

// NewHTTPRouter builds the echo instance with every route of the service.
func (c *CompositionRoot) NewHTTPRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		httpin.CommandHandlers{
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			AcceptOrder:     c.CreateAcceptOrderCommandHandler(),
			TransitionOrder: c.CreateTransitionOrderCommandHandler(),
			RemoveOrder:     c.CreateRemoveOrderCommandHandler(),
			RateOrder:       c.CreateRateOrderCommandHandler(),
			RecordPayment:   c.CreateRecordPaymentCommandHandler(),
			SetDriverStatus: c.CreateSetDriverStatusCommandHandler(),
		},
		httpin.QueryHandlers{
			GetOrder:            c.CreateGetOrderQueryHandler(),
			ListCustomerOrders:  c.CreateListCustomerOrdersQueryHandler(),
			ListAvailableOrders: c.CreateListAvailableOrdersQueryHandler(),
			ListDriverEarnings:  c.CreateListDriverEarningsQueryHandler(),
			GetEarningsSummary:  c.CreateGetEarningsSummaryQueryHandler(),
			GetDriverStatus:     c.CreateGetDriverStatusQueryHandler(),
			ListNotifications:   c.CreateListNotificationsQueryHandler(),
			QuoteFare:           c.CreateQuoteFareQueryHandler(),
			GetOrderReport:      c.CreateGetOrderReportQueryHandler(),
		},
		c.logger,
	)
	return httpin.NewRouter(server, c.jwt, c.hub)
}

// NewJobManager returns the background workers: the notification fan-out and the driver
// presence job. A zero idle timeout disables the presence job.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	if c.configs.DriverIdleTimeout <= 0 {
		return jobs.NewJobManager(c.fanout)
	}
	presence := jobs.NewDriverPresenceJob(
		c.readRepositories().DriverStatusRepository(),
		c.CreateSetDriverStatusCommandHandler(),
		c.clock,
		c.configs.DriverIdleTimeout,
		c.configs.DriverPresenceSchedule,
		c.logger,
	)
	return jobs.NewJobManager(c.fanout, presence)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}

type FuncDriverStatusUoWFactory func() commands.DriverStatusUoW

func (f FuncDriverStatusUoWFactory) Create() commands.DriverStatusUoW {
	return f()
}

