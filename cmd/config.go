package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	JWTSecret string

	MinFare   decimal.Decimal
	FareBase  decimal.Decimal
	FarePerKm decimal.Decimal

	RabbitMQURL      string
	RabbitMQExchange string
	PGNotifyChannel  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	DriverIdleTimeout      time.Duration
	DriverPresenceSchedule string
}

// Defaults applied when the environment leaves a setting empty.
var (
	DefaultMinFare                = decimal.RequireFromString("5.00")
	DefaultFareBase               = decimal.RequireFromString("1.00")
	DefaultFarePerKm              = decimal.RequireFromString("0.50")
	DefaultRabbitMQExchange       = "dispatch.notifications"
	DefaultDriverPresenceSchedule = "0 * * * * *"
)

// DSN is the libpq keyword/value connection string shared by gorm and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var missing []string
	for name, value := range map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if !c.FareBase.IsPositive() {
		return fmt.Errorf("FARE_BASE must be positive, got %s", c.FareBase)
	}
	if c.FarePerKm.IsNegative() {
		return fmt.Errorf("FARE_PER_KM must not be negative, got %s", c.FarePerKm)
	}
	if c.MinFare.IsNegative() {
		return fmt.Errorf("MIN_FARE must not be negative, got %s", c.MinFare)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseDecimal parses value, falling back to def when value is empty.
func ParseDecimal(name, value string, def decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// ParseDuration parses value such as "15m", falling back to def when value is empty.
// A zero duration disables whatever the setting drives.
func ParseDuration(name, value string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: %s is negative", name, d)
	}
	return d, nil
}
