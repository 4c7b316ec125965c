package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/ddd"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the dispatch domain. It owns the lifecycle state machine
// and raises CreatedEvent, StatusUpdatedEvent and PaymentRecordedEvent as it changes.
//
// Order follows these invariants:
//   - customer and region never change after creation
//   - driverID is set iff the status requires a driver
//   - price is positive and kept with two decimal places
//   - terminal orders (completed, cancelled) are never mutated again, except that a completed
//     order can be marked paid once
type Order struct {
	ddd.BaseAggregate

	id            kernel.UUID
	orderType     Type
	customerID    kernel.UUID
	driverID      *kernel.UUID
	stationID     *kernel.UUID
	pickup        Address
	dropoff       Address
	region        string
	price         decimal.Decimal
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	parcel        *ParcelDetails
	ride          *RideDetails
	notes         string
	scheduledAt   *time.Time
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	removedAt     *time.Time

	isConstructed bool
}

// NewOrderParams groups everything a customer supplies when placing an order.
type NewOrderParams struct {
	ID            kernel.UUID
	Type          Type
	CustomerID    kernel.UUID
	StationID     *kernel.UUID
	Region        string
	Pickup        Address
	Dropoff       Address
	Price         decimal.Decimal
	PaymentMethod PaymentMethod
	Parcel        *ParcelDetails
	Ride          *RideDetails
	Notes         string
	ScheduledAt   *time.Time
}

// State is the part of an order a conditional write compares against.
type State struct {
	Status        Status
	DriverID      *kernel.UUID
	PaymentStatus PaymentStatus
}

// Snapshot is a detached copy of every order field. It is used to rehydrate orders from
// storage and as the payload of CreatedEvent.
type Snapshot struct {
	ID            kernel.UUID
	Type          Type
	CustomerID    kernel.UUID
	DriverID      *kernel.UUID
	StationID     *kernel.UUID
	Pickup        Address
	Dropoff       Address
	Region        string
	Price         decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Parcel        *ParcelDetails
	Ride          *RideDetails
	Notes         string
	ScheduledAt   *time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	RemovedAt     *time.Time
}

// NewOrder validates a new order placed at now. The order starts pending with payment pending
// and records a CreatedEvent. All field problems are reported together.
func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	o := &Order{
		stationID:     copyID(p.StationID),
		pickup:        p.Pickup,
		dropoff:       p.Dropoff,
		paymentStatus: PaymentPending,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomer(p.CustomerID),
		o.setRegion(p.Region),
		o.setAddresses(p.Pickup, p.Dropoff),
		o.setPrice(p.Price),
		o.setPaymentMethod(p.PaymentMethod),
		o.setPayload(p.Type, p.Parcel, p.Ride),
		o.setNotes(p.Notes),
		o.setScheduledAt(p.ScheduledAt, now),
	); err != nil {
		return nil, err
	}

	o.RaiseDomainEvent(NewCreatedEvent(o.Snapshot()))
	return o, nil
}

// RestoreOrder rebuilds an order read from storage. No events are raised.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		stationID:     copyID(s.StationID),
		driverID:      copyID(s.DriverID),
		pickup:        s.Pickup,
		dropoff:       s.Dropoff,
		paymentStatus: s.PaymentStatus,
		scheduledAt:   copyTime(s.ScheduledAt),
		removedAt:     copyTime(s.RemovedAt),
		status:        s.Status,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomer(s.CustomerID),
		o.setRegion(s.Region),
		o.setPrice(s.Price),
		o.setPaymentMethod(s.PaymentMethod),
		s.PaymentStatus.Validate(),
		o.setPayload(s.Type, s.Parcel, s.Ride),
		o.setNotes(s.Notes),
		s.Status.Validate(),
		s.Status.ValidateDriver(s.DriverID != nil),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) DriverID() *kernel.UUID {
	return copyID(o.driverID)
}

func (o *Order) StationID() *kernel.UUID {
	return copyID(o.stationID)
}

func (o *Order) Pickup() Address {
	return o.pickup
}

func (o *Order) Dropoff() Address {
	return o.dropoff
}

func (o *Order) Region() string {
	return o.region
}

func (o *Order) Price() decimal.Decimal {
	return o.price
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) ScheduledAt() *time.Time {
	return copyTime(o.scheduledAt)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) RemovedAt() *time.Time {
	return copyTime(o.removedAt)
}

func (o *Order) IsRemoved() bool {
	return o.removedAt != nil
}

func (o *Order) IsScheduled() bool {
	return o.scheduledAt != nil
}

func (o *Order) State() State {
	return State{Status: o.status, DriverID: copyID(o.driverID), PaymentStatus: o.paymentStatus}
}

func (o *Order) IsOwnedBy(customer kernel.UUID) bool {
	return o.customerID.IsEqual(customer)
}

func (o *Order) Parcel() *ParcelDetails {
	if o.parcel == nil {
		return nil
	}
	p := *o.parcel
	return &p
}

func (o *Order) Ride() *RideDetails {
	if o.ride == nil {
		return nil
	}
	r := *o.ride
	return &r
}

// IsAssignedTo reports whether driver is the current driver of the order.
func (o *Order) IsAssignedTo(driver kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driver)
}

// Snapshot returns a detached copy of the order fields.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:            o.id,
		Type:          o.orderType,
		CustomerID:    o.customerID,
		DriverID:      copyID(o.driverID),
		StationID:     copyID(o.stationID),
		Pickup:        o.pickup,
		Dropoff:       o.dropoff,
		Region:        o.region,
		Price:         o.price,
		PaymentMethod: o.paymentMethod,
		PaymentStatus: o.paymentStatus,
		Parcel:        o.Parcel(),
		Ride:          o.Ride(),
		Notes:         o.notes,
		ScheduledAt:   copyTime(o.scheduledAt),
		Status:        o.status,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
		RemovedAt:     copyTime(o.removedAt),
	}
}

// Accept assigns the order to driverID. The order must still be pending and belong to
// the driver's region (compared case-insensitively).
func (o *Order) Accept(driverID kernel.UUID, driverRegion string, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	if o.status != Pending || o.removedAt != nil {
		return errs.NewConflictError("order", o.id, "order is no longer available")
	}
	if !kernel.SameRegion(o.region, driverRegion) {
		return errs.NewForbiddenError("accept order", "order belongs to another region")
	}

	old := o.status
	o.driverID = &driverID
	o.status = Accepted
	o.updatedAt = now
	o.RaiseDomainEvent(NewStatusUpdatedEvent(o, o.driverID, old, now))
	return nil
}

// TransitionBy moves the order to target on behalf of actor.
//
// Customers may only cancel their own pending orders. Drivers may only follow the
// lifecycle table on orders assigned to them and can never reach Accepted this way.
// Stations and admins cannot drive the lifecycle.
func (o *Order) TransitionBy(actor kernel.Actor, target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.removedAt != nil {
		return errs.NewInvalidStateError("change a removed order", o.status)
	}

	switch actor.Role {
	case kernel.RoleCustomer:
		if !o.IsOwnedBy(actor.ID) {
			return errs.NewForbiddenError("change order status", "order belongs to another customer")
		}
		if target != Cancelled {
			return errs.NewForbiddenError("change order status", "customers may only cancel orders")
		}
		if o.status != Pending {
			return errs.NewInvalidStateError("cancel order", o.status)
		}
	case kernel.RoleDriver:
		if target == Accepted || !o.status.CanTransitionTo(target) {
			return errs.NewIllegalTransitionError(o.status, target)
		}
		if !o.IsAssignedTo(actor.ID) {
			return errs.NewForbiddenError("change order status", "order is not assigned to this driver")
		}
	case kernel.RoleStation, kernel.RoleAdmin, kernel.RoleUnknown:
		return errs.NewForbiddenError("change order status", fmt.Sprintf("role %s cannot change order status", actor.Role))
	default:
		return errs.NewForbiddenError("change order status", fmt.Sprintf("role %s cannot change order status", actor.Role))
	}

	o.apply(target, now)
	return nil
}

// RecordPayment settles a completed order on behalf of its customer or its driver.
// The amount must match the order price and a paid order cannot be paid again.
func (o *Order) RecordPayment(actor kernel.Actor, method PaymentMethod, amount decimal.Decimal, now time.Time) error {
	if err := method.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if o.removedAt != nil {
		return errs.NewInvalidStateError("pay a removed order", o.status)
	}

	switch actor.Role {
	case kernel.RoleCustomer:
		if !o.IsOwnedBy(actor.ID) {
			return errs.NewForbiddenError("record payment", "order belongs to another customer")
		}
	case kernel.RoleDriver:
		if !o.IsAssignedTo(actor.ID) {
			return errs.NewForbiddenError("record payment", "order is not assigned to this driver")
		}
	default:
		return errs.NewForbiddenError("record payment", fmt.Sprintf("role %s cannot record payments", actor.Role))
	}

	if o.status != Completed {
		return errs.NewInvalidStateError("record payment", o.status)
	}
	if o.paymentStatus == PaymentPaid {
		return errs.NewConflictError("order", o.id, "order is already paid")
	}
	if !amount.Round(2).Equal(o.price) {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s does not match the order price %s", amount, o.price))
	}

	o.paymentMethod = method
	o.paymentStatus = PaymentPaid
	o.updatedAt = now
	o.RaiseDomainEvent(NewPaymentRecordedEvent(o, now))
	return nil
}

// Cancel is TransitionBy with the cancelled target.
func (o *Order) Cancel(actor kernel.Actor, now time.Time) error {
	return o.TransitionBy(actor, Cancelled, now)
}

// MarkRemoved soft-removes the order for its owning customer. Only pending or cancelled
// orders can be removed.
func (o *Order) MarkRemoved(actor kernel.Actor, now time.Time) error {
	if actor.Role != kernel.RoleCustomer || !o.IsOwnedBy(actor.ID) {
		return errs.NewForbiddenError("remove order", "only the owning customer may remove an order")
	}
	if o.removedAt != nil {
		return errs.NewObjectNotFoundError("order", o.id)
	}
	if o.status != Pending && o.status != Cancelled {
		return errs.NewInvalidStateError("remove order", o.status)
	}

	o.removedAt = &now
	o.updatedAt = now
	return nil
}

// IsVisibleTo reports whether the profile may read the order.
func (o *Order) IsVisibleTo(p kernel.Profile) bool {
	if o.removedAt != nil {
		return false
	}
	switch p.Role {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleCustomer:
		return o.IsOwnedBy(p.ID)
	case kernel.RoleDriver:
		if o.IsAssignedTo(p.ID) {
			return true
		}
		return o.status == Pending && kernel.SameRegion(o.region, p.Region)
	case kernel.RoleStation:
		return o.stationID != nil && o.stationID.IsEqual(p.ID)
	case kernel.RoleUnknown:
		return false
	}
	return false
}

func (o *Order) apply(target Status, now time.Time) {
	old := o.status
	previousDriver := o.driverID
	if !target.RequiresDriver() {
		o.driverID = nil
	}
	o.status = target
	o.updatedAt = now
	o.RaiseDomainEvent(NewStatusUpdatedEvent(o, previousDriver, old, now))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRegion(region string) error {
	region = strings.TrimSpace(region)
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	o.region = region
	return nil
}

func (o *Order) setAddresses(pickup, dropoff Address) error {
	var problems []error
	if strings.TrimSpace(pickup.Line) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup"))
	}
	if strings.TrimSpace(dropoff.Line) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("dropoff"))
	}
	return errors.Join(problems...)
}

func (o *Order) setPrice(price decimal.Decimal) error {
	rounded := price.Round(2)
	if !rounded.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	o.price = rounded
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.paymentMethod = m
	return nil
}

func (o *Order) setPayload(t Type, parcel *ParcelDetails, ride *RideDetails) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t

	switch t {
	case TypeParcel:
		if parcel == nil {
			return errs.NewValueIsRequiredError("parcel")
		}
		if err := parcel.Validate(); err != nil {
			return err
		}
		p := *parcel
		p.Description = strings.TrimSpace(p.Description)
		o.parcel = &p
	case TypeRide:
		if ride == nil {
			return errs.NewValueIsRequiredError("ride")
		}
		if err := ride.Validate(); err != nil {
			return err
		}
		r := *ride
		o.ride = &r
	}
	return nil
}

func (o *Order) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	o.notes = notes
	return nil
}

func (o *Order) setScheduledAt(at *time.Time, now time.Time) error {
	if at == nil {
		return nil
	}
	if !at.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("scheduled_at",
			fmt.Errorf("%s is not after %s", at.Format(time.RFC3339), now.Format(time.RFC3339)))
	}
	o.scheduledAt = copyTime(at)
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
