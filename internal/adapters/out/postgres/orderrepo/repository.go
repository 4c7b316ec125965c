package orderrepo

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/ddd"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

const table = "orders"

// GormOrderRepository implements OrderRepository using GORM.
//
// Updates and removals are compare-and-set statements: the WHERE clause repeats the status
// and driver the caller observed, so two drivers racing for the same pending order cannot
// both succeed even under READ COMMITTED.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(aggregate ddd.AggregateRoot)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictError("order", aggregate.ID(), "order already exists")
		}
		return pgerr.Unavailable(table, err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get retrieves a non-removed order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND removed_at IS NULL", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Unavailable(table, err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND removed_at IS NULL", customerID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Unavailable(table, err)
	}
	return toDomainList(dtos)
}

// ListPendingInRegion compares regions after trimming and lower-casing both sides.
func (r *GormOrderRepository) ListPendingInRegion(
	ctx context.Context, region string, orderType *order.Type,
) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND removed_at IS NULL", order.Pending.String()).
		Where("LOWER(TRIM(region)) = ?", strings.ToLower(strings.TrimSpace(region)))
	if orderType != nil {
		query = query.Where("type = ?", orderType.String())
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, pgerr.Unavailable(table, err)
	}
	return toDomainList(dtos)
}

// Update writes the mutable columns of the order if the stored row still matches expected.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.State) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.compareAndSet(ctx, aggregate.ID(), expected, map[string]any{
		"status":         dto.Status,
		"driver_id":      nullable(dto.DriverID),
		"payment_method": dto.PaymentMethod,
		"payment_status": dto.PaymentStatus,
		"updated_at":     dto.UpdatedAt,
	}); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Remove stamps removed_at if the stored row still matches expected.
func (r *GormOrderRepository) Remove(ctx context.Context, aggregate *order.Order, expected order.State) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsRemoved() {
		return errs.NewInvalidStateError("remove order", aggregate.Status())
	}

	if err := r.compareAndSet(ctx, aggregate.ID(), expected, map[string]any{
		"removed_at": aggregate.RemovedAt(),
		"updated_at": aggregate.UpdatedAt(),
	}); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// CountByStatus groups the non-removed orders by status.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, COUNT(*) AS count").
		Where("removed_at IS NULL").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, pgerr.Unavailable(table, err)
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		status, err := order.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Count
	}
	return counts, nil
}

func (r *GormOrderRepository) compareAndSet(
	ctx context.Context, id kernel.UUID, expected order.State, columns map[string]any,
) error {
	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND removed_at IS NULL", id.Bytes(), expected.Status.String())
	if expected.DriverID == nil {
		query = query.Where("driver_id IS NULL")
	} else {
		query = query.Where("driver_id = ?", expected.DriverID.Bytes())
	}
	if expected.PaymentStatus != "" {
		query = query.Where("payment_status = ?", string(expected.PaymentStatus))
	}

	result := query.Updates(columns)
	if result.Error != nil {
		return pgerr.Unavailable(table, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND removed_at IS NULL", id.Bytes()).
		Count(&count).Error; err != nil {
		return pgerr.Unavailable(table, err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictError("order", id, "order was changed concurrently")
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
