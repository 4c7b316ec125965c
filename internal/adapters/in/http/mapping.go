package http

import (
	"errors"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) servers.Money {
	return d.StringFixed(2)
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toAddress(a order.Address) servers.Address {
	out := servers.Address{Address: a.Line}
	if a.HasPoint() {
		lat, lng := a.Point.Lat(), a.Point.Lng()
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}

func toOrder(o *order.Order) servers.Order {
	out := servers.Order{
		Id:            o.ID().Bytes(),
		Type:          servers.OrderType(o.Type()),
		CustomerId:    o.CustomerID().Bytes(),
		DriverId:      optionalID(o.DriverID()),
		StationId:     optionalID(o.StationID()),
		Region:        o.Region(),
		Pickup:        toAddress(o.Pickup()),
		Dropoff:       toAddress(o.Dropoff()),
		Price:         money(o.Price()),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		Notes:         optionalString(o.Notes()),
		ScheduledAt:   o.ScheduledAt(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	if p := o.Parcel(); p != nil {
		out.Parcel = &servers.Parcel{Description: p.Description, Weight: p.Weight.InexactFloat64()}
	}
	if r := o.Ride(); r != nil {
		ride := &servers.Ride{PassengerCount: r.PassengerCount}
		if r.CarType != order.CarAny {
			carType := servers.RideCarType(r.CarType)
			ride.CarType = &carType
		}
		out.Ride = ride
	}
	return out
}

func toOrders(orders []*order.Order) []servers.Order {
	out := make([]servers.Order, len(orders))
	for i, o := range orders {
		out[i] = toOrder(o)
	}
	return out
}

func toAvailableOrders(matches []services.Match) []servers.AvailableOrder {
	out := make([]servers.AvailableOrder, len(matches))
	for i, m := range matches {
		out[i] = servers.AvailableOrder{Order: toOrder(m.Order), DistanceKm: m.DistanceKm}
	}
	return out
}

func toRating(r *rating.Rating) servers.Rating {
	return servers.Rating{
		Id:        r.ID().Bytes(),
		OrderId:   r.OrderID().Bytes(),
		DriverId:  r.DriverID().Bytes(),
		Score:     r.Score(),
		Comment:   optionalString(r.Comment()),
		CreatedAt: r.CreatedAt(),
	}
}

func toDriverStatus(s *driver.Status) servers.DriverStatus {
	out := servers.DriverStatus{
		DriverId: s.DriverID().Bytes(),
		Status:   s.Availability().String(),
	}
	// A driver who never reported has no timestamp yet.
	if updatedAt := s.UpdatedAt(); !updatedAt.IsZero() {
		out.UpdatedAt = &updatedAt
	}
	return out
}

func toEarnings(earnings []*earning.Earning, total decimal.Decimal) servers.EarningsList {
	out := servers.EarningsList{
		Earnings: make([]servers.Earning, len(earnings)),
		Total:    money(total),
	}
	for i, e := range earnings {
		out.Earnings[i] = servers.Earning{
			Id:        e.ID().Bytes(),
			OrderId:   e.OrderID().Bytes(),
			Amount:    money(e.Amount()),
			CreatedAt: e.CreatedAt(),
		}
	}
	return out
}

func toNotifications(entries []ports.InboxEntry) []servers.Notification {
	out := make([]servers.Notification, len(entries))
	for i, e := range entries {
		payload := e.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		out[i] = servers.Notification{
			Id:        e.ID.Bytes(),
			Channel:   e.Channel,
			Event:     e.Event,
			Message:   e.Message,
			Payload:   payload,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}

func fromAddress(param string, a servers.Address) (order.Address, error) {
	point, err := kernel.NewOptionalGeoPoint(a.Latitude, a.Longitude)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(param, a.Address, point)
}

// toDraft turns a NewOrder body into the command input. Malformed values are validation errors.
func toDraft(body servers.NewOrder) (commands.OrderDraft, error) {
	pickup, pickupErr := fromAddress("pickup", body.Pickup)
	dropoff, dropoffErr := fromAddress("dropoff", body.Dropoff)

	price, priceErr := decimal.NewFromString(body.Price)
	if priceErr != nil {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", priceErr)
	}

	var stationErr error
	var stationID *kernel.UUID
	if body.StationId != nil {
		id, err := kernel.UUIDFromGoogle(*body.StationId)
		stationID, stationErr = &id, err
	}

	if err := errors.Join(pickupErr, dropoffErr, priceErr, stationErr); err != nil {
		return commands.OrderDraft{}, err
	}

	draft := commands.OrderDraft{
		Type:          string(body.Type),
		Pickup:        pickup,
		Dropoff:       dropoff,
		Price:         price,
		PaymentMethod: string(body.PaymentMethod),
		ScheduledAt:   body.ScheduledAt,
		StationID:     stationID,
	}
	if body.Notes != nil {
		draft.Notes = *body.Notes
	}
	if body.Parcel != nil {
		draft.Parcel = &order.ParcelDetails{
			Description: body.Parcel.Description,
			Weight:      decimal.NewFromFloat(body.Parcel.Weight),
		}
	}
	if body.Ride != nil {
		draft.Ride = &order.RideDetails{PassengerCount: body.Ride.PassengerCount}
		if body.Ride.CarType != nil {
			draft.Ride.CarType = order.CarType(*body.Ride.CarType)
		}
	}
	return draft, nil
}
