package postgres

import (
	"dispatch/internal/adapters/out/postgres/driverstatusrepo"
	"dispatch/internal/adapters/out/postgres/earningrepo"
	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/profilerepo"
	"dispatch/internal/adapters/out/postgres/ratingrepo"

	"gorm.io/gorm"
)

// Tables lists every table Migrate creates, in an order suitable for TRUNCATE.
var Tables = []string{
	"orders", "driver_earnings", "ratings", "driver_statuses", "notifications", "profiles",
}

// Migrate creates or updates the dispatch schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&earningrepo.EarningDTO{},
		&ratingrepo.RatingDTO{},
		&driverstatusrepo.DriverStatusDTO{},
		&notificationrepo.NotificationDTO{},
		&profilerepo.ProfileDTO{},
	)
}
