// Package earningrepo stores the driver earnings ledger. The unique index on order_id makes
// crediting idempotent.
package earningrepo

import (
	"context"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const table = "driver_earnings"

type EarningDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DriverID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_driver_earnings_driver_created,priority:1"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_driver_earnings_driver_created,priority:2"`
}

func (EarningDTO) TableName() string {
	return table
}

type GormEarningRepository struct {
	db *gorm.DB
}

func NewGormEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// Credit inserts the earning with ON CONFLICT (order_id) DO NOTHING.
func (r *GormEarningRepository) Credit(ctx context.Context, e *earning.Earning) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	dto := EarningDTO{
		ID:        e.ID().Bytes(),
		DriverID:  e.DriverID().Bytes(),
		OrderID:   e.OrderID().Bytes(),
		Amount:    e.Amount(),
		CreatedAt: e.CreatedAt(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, pgerr.Unavailable(table, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *GormEarningRepository) ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*earning.Earning, error) {
	var dtos []EarningDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Unavailable(table, err)
	}

	earnings := make([]*earning.Earning, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}
	return earnings, nil
}

func (r *GormEarningRepository) SumBetween(
	ctx context.Context, driverID kernel.UUID, from, to time.Time,
) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&EarningDTO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("driver_id = ? AND created_at >= ? AND created_at < ?", driverID.Bytes(), from, to).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, pgerr.Unavailable(table, err)
	}
	return sum, nil
}

func toDomain(dto EarningDTO) (*earning.Earning, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromGoogle(dto.DriverID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return earning.RestoreEarning(id, driverID, orderID, dto.Amount, dto.CreatedAt.UTC())
}
