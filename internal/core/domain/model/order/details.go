package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MaxAddressLength = 255
	MaxNotesLength   = 500
	MaxPassengers    = 8
)

// Type distinguishes passenger rides from parcel deliveries.
type Type string

const (
	TypeRide   Type = "ride"
	TypeParcel Type = "parcel"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case TypeRide, TypeParcel:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not one of ride, parcel", string(t)))
}

func (t Type) String() string {
	return string(t)
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentWallet:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment_method",
		fmt.Errorf("%q is not one of cash, card, wallet", string(m)))
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentPaid:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%q is not one of pending, paid", string(p)))
}

// CarType is the optional vehicle class requested for a ride. The empty value means no preference.
type CarType string

const (
	CarAny     CarType = ""
	CarEconomy CarType = "economy"
	CarComfort CarType = "comfort"
	CarLuxury  CarType = "luxury"
	CarFamily  CarType = "family"
)

func (c CarType) Validate() error {
	switch c {
	case CarAny, CarEconomy, CarComfort, CarLuxury, CarFamily:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("car_type",
		fmt.Errorf("%q is not one of economy, comfort, luxury, family", string(c)))
}

// Address is a pickup or dropoff place: a free-text line and optional coordinates.
type Address struct {
	Line  string
	Point *kernel.GeoPoint
}

func NewAddress(param, line string, point *kernel.GeoPoint) (Address, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Address{}, errs.NewValueIsRequiredError(param)
	}
	if utf8.RuneCountInString(line) > MaxAddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError(param+" length", utf8.RuneCountInString(line), 1, MaxAddressLength)
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return Address{}, err
		}
	}
	return Address{Line: line, Point: point}, nil
}

func (a Address) HasPoint() bool {
	return a.Point != nil
}

type ParcelDetails struct {
	Description string
	Weight      decimal.Decimal
}

func (p ParcelDetails) Validate() error {
	var problems []error
	if strings.TrimSpace(p.Description) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("parcel.description"))
	}
	if !p.Weight.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("parcel.weight",
			fmt.Errorf("%s is not greater than 0", p.Weight)))
	}
	return errors.Join(problems...)
}

type RideDetails struct {
	PassengerCount int
	CarType        CarType
}

func (r RideDetails) Validate() error {
	var problems []error
	if r.PassengerCount < 1 || r.PassengerCount > MaxPassengers {
		problems = append(problems, errs.NewValueIsOutOfRangeError("ride.passenger_count", r.PassengerCount, 1, MaxPassengers))
	}
	if err := r.CarType.Validate(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}
