package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Type              string              `gorm:"type:varchar(16);not null"`
	CustomerID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	DriverID          *uuid.UUID          `gorm:"type:uuid;index"`
	StationID         *uuid.UUID          `gorm:"type:uuid"`
	Pickup            AddressDTO          `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff           AddressDTO          `gorm:"embedded;embeddedPrefix:dropoff_"`
	Region            string              `gorm:"type:varchar(100);not null;index"`
	Price             decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	PaymentMethod     string              `gorm:"type:varchar(16);not null"`
	PaymentStatus     string              `gorm:"type:varchar(16);not null"`
	ParcelDescription *string             `gorm:"type:text"`
	ParcelWeight      decimal.NullDecimal `gorm:"type:numeric(10,3)"`
	PassengerCount    *int
	CarType           *string    `gorm:"type:varchar(16)"`
	Notes             string     `gorm:"type:text"`
	ScheduledAt       *time.Time `gorm:"type:timestamptz"`
	Status            string     `gorm:"type:varchar(16);not null;index"`
	CreatedAt         time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false;index"`
	UpdatedAt         time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	RemovedAt         *time.Time `gorm:"type:timestamptz;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Address   string `gorm:"type:varchar(255);not null"`
	Latitude  *float64
	Longitude *float64
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:            s.ID.Bytes(),
		Type:          s.Type.String(),
		CustomerID:    s.CustomerID.Bytes(),
		DriverID:      rawID(s.DriverID),
		StationID:     rawID(s.StationID),
		Pickup:        addressToDTO(s.Pickup),
		Dropoff:       addressToDTO(s.Dropoff),
		Region:        s.Region,
		Price:         s.Price,
		PaymentMethod: string(s.PaymentMethod),
		PaymentStatus: string(s.PaymentStatus),
		Notes:         s.Notes,
		ScheduledAt:   s.ScheduledAt,
		Status:        s.Status.String(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		RemovedAt:     s.RemovedAt,
	}

	if s.Parcel != nil {
		description := s.Parcel.Description
		dto.ParcelDescription = &description
		dto.ParcelWeight = decimal.NewNullDecimal(s.Parcel.Weight)
	}
	if s.Ride != nil {
		count := s.Ride.PassengerCount
		carType := string(s.Ride.CarType)
		dto.PassengerCount = &count
		dto.CarType = &carType
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	driverID, err := domainID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	stationID, err := domainID(dto.StationID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := addressToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID:            id,
		Type:          order.Type(dto.Type),
		CustomerID:    customerID,
		DriverID:      driverID,
		StationID:     stationID,
		Pickup:        pickup,
		Dropoff:       dropoff,
		Region:        dto.Region,
		Price:         dto.Price,
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		Notes:         dto.Notes,
		ScheduledAt:   utc(dto.ScheduledAt),
		Status:        status,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		RemovedAt:     utc(dto.RemovedAt),
	}
	if dto.ParcelDescription != nil {
		s.Parcel = &order.ParcelDetails{Description: *dto.ParcelDescription, Weight: dto.ParcelWeight.Decimal}
	}
	if dto.PassengerCount != nil {
		ride := &order.RideDetails{PassengerCount: *dto.PassengerCount}
		if dto.CarType != nil {
			ride.CarType = order.CarType(*dto.CarType)
		}
		s.Ride = ride
	}

	return order.RestoreOrder(s)
}

func addressToDTO(a order.Address) AddressDTO {
	dto := AddressDTO{Address: a.Line}
	if a.HasPoint() {
		lat, lng := a.Point.Lat(), a.Point.Lng()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	point, err := kernel.NewOptionalGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return order.Address{}, err
	}
	return order.Address{Line: dto.Address, Point: point}, nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
