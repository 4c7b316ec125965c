package http

import (
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/generated/servers"
)

// CommandHandlers groups the state-changing use cases exposed over HTTP.
type CommandHandlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AcceptOrder     commands.AcceptOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	RemoveOrder     commands.RemoveOrderCommandHandler
	RateOrder       commands.RateOrderCommandHandler
	RecordPayment   commands.RecordPaymentCommandHandler
	SetDriverStatus commands.SetDriverStatusCommandHandler
}

// QueryHandlers groups the read-only use cases exposed over HTTP.
type QueryHandlers struct {
	GetOrder            queries.GetOrderQueryHandler
	ListCustomerOrders  queries.ListCustomerOrdersQueryHandler
	ListAvailableOrders queries.ListAvailableOrdersQueryHandler
	ListDriverEarnings  queries.ListDriverEarningsQueryHandler
	GetEarningsSummary  queries.GetEarningsSummaryQueryHandler
	GetDriverStatus     queries.GetDriverStatusQueryHandler
	ListNotifications   queries.ListNotificationsQueryHandler
	QuoteFare           queries.QuoteFareQueryHandler
	GetOrderReport      queries.GetOrderReportQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(commands CommandHandlers, queries QueryHandlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		commands: commands,
		queries:  queries,
		logger:   logger.With("component", "HTTPServer"),
	}
}
