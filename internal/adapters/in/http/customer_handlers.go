package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/customer/orders - places a new order.
//
// @Summary Place an order
// @Tags customer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body servers.NewOrder true "Request body"
// @Success 201 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /customer/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	draft, err := toDraft(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor.ID, draft)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(created))
}

// ListCustomerOrders handles GET /api/v1/customer/orders - the requester's orders, newest first.
//
// @Summary List the requester's orders
// @Tags customer
// @Security BearerAuth
// @Produce json
// @Success 200 {array} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /customer/orders [get]
func (s *Server) ListCustomerOrders(ctx echo.Context) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListCustomerOrdersQuery(actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	orders, err := s.queries.ListCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// CancelOrder handles POST /api/v1/customer/orders/{orderId}/cancel.
//
// @Summary Cancel an order
// @Tags customer
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} servers.Order
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /customer/orders/{orderId}/cancel [post]
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCancelOrderCommand(id, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cancelled, err := s.commands.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(cancelled))
}

// RemoveOrder handles DELETE /api/v1/customer/orders/{orderId} - hides a finished order.
//
// @Summary Remove a finished order
// @Tags customer
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order id"
// @Success 204
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /customer/orders/{orderId} [delete]
func (s *Server) RemoveOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRemoveOrderCommand(id, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.commands.RemoveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RateOrder handles POST /api/v1/customer/orders/{orderId}/rating.
//
// @Summary Rate a completed order
// @Tags customer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param body body servers.NewRating true "Request body"
// @Success 201 {object} servers.Rating
// @Failure 400,401,403,404,409,422 {object} servers.Error
// @Router /customer/orders/{orderId}/rating [post]
func (s *Server) RateOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx, kernel.RoleCustomer)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	var comment string
	if body.Comment != nil {
		comment = *body.Comment
	}
	cmd, err := commands.NewRateOrderCommand(id, actor.ID, body.Score, comment)
	if err != nil {
		return s.fail(ctx, err)
	}

	rated, err := s.commands.RateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRating(rated))
}
