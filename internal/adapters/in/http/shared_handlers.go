package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GetOrder handles GET /api/v1/orders/{orderId}. Orders not visible to the requester are 403.
//
// @Summary Get an order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /orders/{orderId} [get]
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(found))
}

// RecordPayment handles POST /api/v1/orders/{orderId}/payment. The owning customer or the
// assigned driver settles a completed order for its full price.
//
// @Summary Record payment for a completed order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param body body servers.NewPayment true "Request body"
// @Success 200 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /orders/{orderId}/payment [post]
func (s *Server) RecordPayment(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RecordPaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("amount", err))
	}
	cmd, err := commands.NewRecordPaymentCommand(id, actor, body.Method, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	paid, err := s.commands.RecordPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(paid))
}

// ListNotifications handles GET /api/v1/notifications - the requester's inbox.
//
// @Summary Inbox of the requester
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param limit query integer false "Maximum entries"
// @Success 200 {array} servers.Notification
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /notifications [get]
func (s *Server) ListNotifications(ctx echo.Context, params servers.ListNotificationsParams) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewListNotificationsQuery(actor.ID, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toNotifications(entries))
}

// QuoteFare handles GET /api/v1/fares/quote.
//
// @Summary Quote a fare
// @Tags fares
// @Security BearerAuth
// @Produce json
// @Param type query string false "ride or parcel"
// @Param distance_km query number false "Trip distance"
// @Param pickup_lat query number false "Pickup latitude"
// @Param pickup_lng query number false "Pickup longitude"
// @Param dropoff_lat query number false "Dropoff latitude"
// @Param dropoff_lng query number false "Dropoff longitude"
// @Success 200 {object} servers.FareQuote
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /fares/quote [get]
func (s *Server) QuoteFare(ctx echo.Context, params servers.QuoteFareParams) error {
	if _, err := requireActor(ctx); err != nil {
		return s.fail(ctx, err)
	}

	pickup, err := kernel.NewOptionalGeoPoint(params.PickupLat, params.PickupLng)
	if err != nil {
		return s.fail(ctx, err)
	}
	dropoff, err := kernel.NewOptionalGeoPoint(params.DropoffLat, params.DropoffLng)
	if err != nil {
		return s.fail(ctx, err)
	}
	var orderType string
	if params.Type != nil {
		orderType = string(*params.Type)
	}

	query, err := queries.NewQuoteFareQuery(orderType, params.DistanceKm, pickup, dropoff)
	if err != nil {
		return s.fail(ctx, err)
	}
	price, err := s.queries.QuoteFare.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.FareQuote{Price: money(price)})
}

// GetOrderReport handles GET /api/v1/admin/reports/orders.
//
// @Summary Orders per status
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} servers.OrderReport
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /admin/reports/orders [get]
func (s *Server) GetOrderReport(ctx echo.Context) error {
	if _, err := requireActor(ctx, kernel.RoleAdmin); err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.queries.GetOrderReport.Handle(ctx.Request().Context(), queries.NewGetOrderReportQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderReport{ByStatus: report.ByStatus, Total: report.Total})
}
