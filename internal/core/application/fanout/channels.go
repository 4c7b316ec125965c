package fanout

import (
	"strings"

	"dispatch/internal/core/domain/model/kernel"
)

const (
	ordersPrefix   = "orders."
	driversPrefix  = "drivers."
	customerPrefix = "customer."
	driverPrefix   = "driver."

	// AdminDriversChannel carries every driver availability change.
	AdminDriversChannel = "admin.drivers"
)

// Region names are matched case-insensitively, so channel names carry them lower-cased.
func normalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

// OrdersChannel carries new orders of a region.
func OrdersChannel(region string) string {
	return ordersPrefix + normalizeRegion(region)
}

// DriversChannel carries new orders and driver availability of a region.
func DriversChannel(region string) string {
	return driversPrefix + normalizeRegion(region)
}

func CustomerChannel(id kernel.UUID) string {
	return customerPrefix + id.String()
}

func DriverChannel(id kernel.UUID) string {
	return driverPrefix + id.String()
}

// UserFromChannel extracts the user of a private customer or driver channel.
func UserFromChannel(channel string) (kernel.UUID, bool) {
	var raw string
	switch {
	case strings.HasPrefix(channel, customerPrefix):
		raw = strings.TrimPrefix(channel, customerPrefix)
	case strings.HasPrefix(channel, driverPrefix):
		raw = strings.TrimPrefix(channel, driverPrefix)
	default:
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}

// IsCustomerChannel reports whether channel is the private channel of a customer.
func IsCustomerChannel(channel string) bool {
	return strings.HasPrefix(channel, customerPrefix)
}

// ChannelsFor lists the channels a user may listen to.
func ChannelsFor(p kernel.Profile) []string {
	switch p.Role {
	case kernel.RoleCustomer:
		return []string{CustomerChannel(p.ID)}
	case kernel.RoleDriver:
		channels := []string{DriverChannel(p.ID)}
		if p.HasRegion() {
			channels = append(channels, OrdersChannel(p.Region), DriversChannel(p.Region))
		}
		return channels
	case kernel.RoleStation:
		if p.HasRegion() {
			return []string{OrdersChannel(p.Region)}
		}
		return nil
	case kernel.RoleAdmin:
		return []string{AdminDriversChannel}
	case kernel.RoleUnknown:
		return nil
	}
	return nil
}
