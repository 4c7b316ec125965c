package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderReportQueryIsNotConstructed = errors.New(
	"GetOrderReportQuery must be created via NewGetOrderReportQuery constructor",
)

type GetOrderReportQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderReportQuery() GetOrderReportQuery {
	return GetOrderReportQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderReportQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderReportQueryIsNotConstructed)
}

// GetOrderReportQueryResponse counts non-removed orders. ByStatus has an entry for every status.
type GetOrderReportQueryResponse struct {
	ByStatus map[string]int64
	Total    int64
}

type GetOrderReportQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetOrderReportQueryHandler(orders ports.OrderRepository) GetOrderReportQueryHandler {
	return GetOrderReportQueryHandler{orders: orders}
}

func (h GetOrderReportQueryHandler) Handle(ctx context.Context, query GetOrderReportQuery) (GetOrderReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderReportQueryResponse{}, err
	}

	counts, err := h.orders.CountByStatus(ctx)
	if err != nil {
		return GetOrderReportQueryResponse{}, err
	}

	resp := GetOrderReportQueryResponse{ByStatus: make(map[string]int64)}
	for _, s := range order.AllStatuses() {
		resp.ByStatus[s.String()] = counts[s]
		resp.Total += counts[s]
	}
	return resp, nil
}
