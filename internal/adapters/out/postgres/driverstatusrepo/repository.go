package driverstatusrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/ddd"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const table = "driver_statuses"

type DriverStatusDTO struct {
	DriverID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Availability string    `gorm:"type:varchar(16);not null;index:idx_driver_statuses_idle,priority:1"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;autoUpdateTime:false;index:idx_driver_statuses_idle,priority:2"`
}

func (DriverStatusDTO) TableName() string {
	return table
}

type aggregateTracker interface {
	TrackAggregate(aggregate ddd.AggregateRoot)
}

type GormDriverStatusRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormDriverStatusRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverStatusRepository {
	return &GormDriverStatusRepository{db: db, tracker: tracker}
}

// Get falls back to an offline status for drivers without a row.
func (r *GormDriverStatusRepository) Get(ctx context.Context, driverID kernel.UUID) (*driver.Status, error) {
	var dto DriverStatusDTO
	if err := r.db.WithContext(ctx).First(&dto, "driver_id = ?", driverID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return driver.NewStatus(driverID)
		}
		return nil, pgerr.Unavailable(table, err)
	}
	return toDomain(dto)
}

func (r *GormDriverStatusRepository) Save(ctx context.Context, status *driver.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	dto := DriverStatusDTO{
		DriverID:     status.DriverID().Bytes(),
		Availability: status.Availability().String(),
		UpdatedAt:    status.UpdatedAt(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "driver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"availability", "updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return pgerr.Unavailable(table, err)
	}

	r.tracker.TrackAggregate(status)
	return nil
}

func (r *GormDriverStatusRepository) ListIdle(ctx context.Context, cutoff time.Time) ([]*driver.Status, error) {
	var dtos []DriverStatusDTO
	err := r.db.WithContext(ctx).
		Where("availability = ? AND updated_at <= ?", driver.Available.String(), cutoff).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Unavailable(table, err)
	}

	statuses := make([]*driver.Status, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func toDomain(dto DriverStatusDTO) (*driver.Status, error) {
	id, err := kernel.UUIDFromGoogle(dto.DriverID)
	if err != nil {
		return nil, err
	}
	availability, err := driver.ParseAvailability(dto.Availability)
	if err != nil {
		return nil, err
	}
	return driver.RestoreStatus(id, availability, dto.UpdatedAt.UTC())
}
