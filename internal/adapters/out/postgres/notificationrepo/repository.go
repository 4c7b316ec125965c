// Package notificationrepo persists the per-user notification inbox.
package notificationrepo

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const table = "notifications"

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	Channel   string    `gorm:"type:varchar(128);not null"`
	Event     string    `gorm:"type:varchar(64);not null"`
	Message   string    `gorm:"type:text;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_notifications_user_created,priority:2"`
}

func (NotificationDTO) TableName() string {
	return table
}

// GormNotificationRepository writes outside any unit of work: inbox entries are produced
// after the order transaction has already committed.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, entry ports.InboxEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return err
	}

	dto := NotificationDTO{
		ID:        entry.ID.Bytes(),
		UserID:    entry.UserID.Bytes(),
		Channel:   entry.Channel,
		Event:     entry.Event,
		Message:   entry.Message,
		Payload:   string(payload),
		CreatedAt: entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Unavailable(table, err)
	}
	return nil
}

func (r *GormNotificationRepository) ListByUser(
	ctx context.Context, userID kernel.UUID, limit int,
) ([]ports.InboxEntry, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID.Bytes()).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, pgerr.Unavailable(table, err)
	}

	entries := make([]ports.InboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toEntry(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toEntry(dto NotificationDTO) (ports.InboxEntry, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return ports.InboxEntry{}, err
	}
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return ports.InboxEntry{}, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(dto.Payload), &payload); err != nil {
		return ports.InboxEntry{}, err
	}

	return ports.InboxEntry{
		ID:        id,
		UserID:    userID,
		Channel:   dto.Channel,
		Event:     dto.Event,
		Message:   dto.Message,
		Payload:   payload,
		CreatedAt: dto.CreatedAt.UTC(),
	}, nil
}
