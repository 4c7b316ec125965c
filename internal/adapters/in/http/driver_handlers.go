package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListAvailableOrders handles GET /api/v1/driver/orders - pending orders of the driver's region.
//
// @Summary List pending orders of the driver's region
// @Tags driver
// @Security BearerAuth
// @Produce json
// @Param latitude query number false "Latitude"
// @Param longitude query number false "Longitude"
// @Param radius query number false "Radius in km"
// @Param type query string false "ride or parcel"
// @Success 200 {array} servers.AvailableOrder
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/orders [get]
func (s *Server) ListAvailableOrders(ctx echo.Context, params servers.ListAvailableOrdersParams) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	filter := queries.AvailableOrdersFilter{
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		RadiusKm:  params.Radius,
	}
	if params.Type != nil {
		filter.Type = string(*params.Type)
	}
	query, err := queries.NewListAvailableOrdersQuery(actor.ID, filter)
	if err != nil {
		return s.fail(ctx, err)
	}

	matches, err := s.queries.ListAvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAvailableOrders(matches))
}

// AcceptOrder handles POST /api/v1/driver/orders/{orderId}/accept. Of several drivers
// accepting the same order only one succeeds; the others get 409.
//
// @Summary Accept a pending order
// @Tags driver
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/orders/{orderId}/accept [post]
func (s *Server) AcceptOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAcceptOrderCommand(id, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	accepted, err := s.commands.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(accepted))
}

// UpdateOrderStatus handles POST /api/v1/driver/orders/{orderId}/status.
//
// @Summary Move an assigned order forward
// @Tags driver
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param body body servers.StatusChange true "Request body"
// @Success 200 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/orders/{orderId}/status [post]
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTransitionOrderCommand(id, actor, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// GetDriverStatus handles GET /api/v1/driver/status.
//
// @Summary Current availability
// @Tags driver
// @Security BearerAuth
// @Produce json
// @Success 200 {object} servers.DriverStatus
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/status [get]
func (s *Server) GetDriverStatus(ctx echo.Context) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDriverStatusQuery(actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.queries.GetDriverStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDriverStatus(status))
}

// SetDriverStatus handles PUT /api/v1/driver/status.
//
// @Summary Declare availability
// @Tags driver
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body servers.DriverAvailability true "Request body"
// @Success 200 {object} servers.DriverStatus
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/status [put]
func (s *Server) SetDriverStatus(ctx echo.Context) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.SetDriverStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverStatusCommand(actor.ID, string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.commands.SetDriverStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDriverStatus(status))
}

// ListDriverEarnings handles GET /api/v1/driver/earnings.
//
// @Summary List the driver's earnings
// @Tags driver
// @Security BearerAuth
// @Produce json
// @Success 200 {object} servers.EarningsList
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/earnings [get]
func (s *Server) ListDriverEarnings(ctx echo.Context) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListDriverEarningsQuery(actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.queries.ListDriverEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toEarnings(res.Earnings, res.Total))
}

// GetEarningsSummary handles GET /api/v1/driver/earnings/summary.
//
// @Summary Earnings today, this week and this month
// @Tags driver
// @Security BearerAuth
// @Produce json
// @Param tz query string false "IANA time zone"
// @Success 200 {object} servers.EarningsSummary
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /driver/earnings/summary [get]
func (s *Server) GetEarningsSummary(ctx echo.Context, params servers.GetEarningsSummaryParams) error {
	actor, err := requireActor(ctx, kernel.RoleDriver)
	if err != nil {
		return s.fail(ctx, err)
	}

	var tz string
	if params.Tz != nil {
		tz = *params.Tz
	}
	query, err := queries.NewGetEarningsSummaryQuery(actor.ID, tz)
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.queries.GetEarningsSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.EarningsSummary{
		Today:    money(summary.Today),
		Week:     money(summary.Week),
		Month:    money(summary.Month),
		Timezone: query.Location().String(),
	})
}
