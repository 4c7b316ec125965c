// Dispatch serves the order lifecycle of rides and parcel deliveries.
//
//	@title						Dispatch API
//	@version					1.0
//	@description				Order lifecycle and dispatch for rides and parcel deliveries.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("build application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close transports", "error", err)
		}
	}()

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		LogLevel:               goDotEnvVariable("LOG_LEVEL"),
		JWTSecret:              goDotEnvVariable("JWT_SECRET"),
		RabbitMQURL:            goDotEnvVariable("RABBITMQ_URL"),
		RabbitMQExchange:       goDotEnvVariable("RABBITMQ_EXCHANGE"),
		PGNotifyChannel:        goDotEnvVariable("PG_NOTIFY_CHANNEL"),
		TwilioAccountSID:       goDotEnvVariable("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:        goDotEnvVariable("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:       goDotEnvVariable("TWILIO_FROM_NUMBER"),
		DriverPresenceSchedule: goDotEnvVariable("DRIVER_PRESENCE_SCHEDULE"),
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}
	if config.RabbitMQExchange == "" {
		config.RabbitMQExchange = cmd.DefaultRabbitMQExchange
	}
	if config.DriverPresenceSchedule == "" {
		config.DriverPresenceSchedule = cmd.DefaultDriverPresenceSchedule
	}

	var err error
	if config.MinFare, err = cmd.ParseDecimal("MIN_FARE", goDotEnvVariable("MIN_FARE"), cmd.DefaultMinFare); err != nil {
		log.Fatal(err)
	}
	if config.FareBase, err = cmd.ParseDecimal("FARE_BASE", goDotEnvVariable("FARE_BASE"), cmd.DefaultFareBase); err != nil {
		log.Fatal(err)
	}
	if config.FarePerKm, err = cmd.ParseDecimal("FARE_PER_KM", goDotEnvVariable("FARE_PER_KM"), cmd.DefaultFarePerKm); err != nil {
		log.Fatal(err)
	}
	if config.DriverIdleTimeout, err = cmd.ParseDuration(
		"DRIVER_IDLE_TIMEOUT", goDotEnvVariable("DRIVER_IDLE_TIMEOUT"), 0); err != nil {
		log.Fatal(err)
	}

	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}
	return config
}

// loadDotEnv reads .env when present. Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	return gormDB
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.NewHTTPRouter()
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown http server", "error", err)
	}
}
