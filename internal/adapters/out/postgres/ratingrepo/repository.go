package ratingrepo

import (
	"context"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const table = "ratings"

type RatingDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Score      int       `gorm:"type:smallint;not null;check:score BETWEEN 1 AND 5"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

func (RatingDTO) TableName() string {
	return table
}

type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Add inserts the rating. The unique index on order_id turns a second rating into a conflict.
func (r *GormRatingRepository) Add(ctx context.Context, rt *rating.Rating) error {
	if err := rt.Validate(); err != nil {
		return err
	}

	dto := RatingDTO{
		ID:         rt.ID().Bytes(),
		OrderID:    rt.OrderID().Bytes(),
		CustomerID: rt.CustomerID().Bytes(),
		DriverID:   rt.DriverID().Bytes(),
		Score:      rt.Score(),
		Comment:    rt.Comment(),
		CreatedAt:  rt.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictError("rating", rt.OrderID(), "order is already rated")
		}
		return pgerr.Unavailable(table, err)
	}
	return nil
}

func (r *GormRatingRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RatingDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&count).Error; err != nil {
		return false, pgerr.Unavailable(table, err)
	}
	return count > 0, nil
}
