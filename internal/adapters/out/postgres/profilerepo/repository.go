// Package profilerepo reads user profiles maintained by the identity service. The dispatch
// service only needs role, region, phone and the last known location.
package profilerepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const table = "profiles"

type ProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Region    string    `gorm:"type:varchar(100)"`
	Phone     string    `gorm:"type:varchar(32)"`
	Latitude  *float64
	Longitude *float64
}

func (ProfileDTO) TableName() string {
	return table
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Get(ctx context.Context, id kernel.UUID) (kernel.Profile, error) {
	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Profile{}, errs.NewObjectNotFoundError("profile", id.String())
		}
		return kernel.Profile{}, pgerr.Unavailable(table, err)
	}
	return toDomain(dto)
}

// Save upserts a profile. It is used by seeding and tests.
func (r *GormProfileRepository) Save(ctx context.Context, p kernel.Profile) error {
	dto := ProfileDTO{
		ID:     p.ID.Bytes(),
		Role:   p.Role.String(),
		Name:   p.Name,
		Region: p.Region,
		Phone:  p.Phone,
	}
	if p.Location != nil {
		lat, lng := p.Location.Lat(), p.Location.Lng()
		dto.Latitude, dto.Longitude = &lat, &lng
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
	return pgerr.Unavailable(table, err)
}

func toDomain(dto ProfileDTO) (kernel.Profile, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return kernel.Profile{}, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return kernel.Profile{}, err
	}
	location, err := kernel.NewOptionalGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.Profile{}, err
	}
	return kernel.Profile{
		ID:       id,
		Role:     role,
		Name:     dto.Name,
		Region:   dto.Region,
		Phone:    dto.Phone,
		Location: location,
	}, nil
}
