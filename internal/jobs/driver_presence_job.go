package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// IdleDriverFinder lists available drivers that have not reported since cutoff.
type IdleDriverFinder interface {
	ListIdle(ctx context.Context, cutoff time.Time) ([]*driver.Status, error)
}

// DriverPresenceJob takes drivers offline when they stayed available without reporting for
// longer than the idle timeout. It goes through SetDriverStatusCommandHandler, so every change
// publishes DriverStatusUpdated like a manual one.
type DriverPresenceJob struct {
	finder      IdleDriverFinder
	handler     commands.SetDriverStatusCommandHandler
	clock       ports.Clock
	idleTimeout time.Duration
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDriverPresenceJob creates the job. schedule is a cron expression with a seconds field,
// e.g. "0 * * * * *" for every minute.
func NewDriverPresenceJob(
	finder IdleDriverFinder,
	handler commands.SetDriverStatusCommandHandler,
	clock ports.Clock,
	idleTimeout time.Duration,
	schedule string,
	logger *slog.Logger,
) *DriverPresenceJob {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DriverPresenceJob{
		finder:      finder,
		handler:     handler,
		clock:       clock,
		idleTimeout: idleTimeout,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "driver_presence_job"),
	}
}

// Start schedules Run.
func (j *DriverPresenceJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Driver presence job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver presence job started",
		"schedule", j.schedule, "idle_timeout", j.idleTimeout.String())
	return nil
}

// Stop stops the schedule and waits for a running Run to finish.
func (j *DriverPresenceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Driver presence job stopped")
}

// Run takes every idle driver offline and reports how many were changed. Failures for single
// drivers do not stop the run and are returned joined.
func (j *DriverPresenceJob) Run(ctx context.Context) (int, error) {
	cutoff := j.clock.Now().Add(-j.idleTimeout)
	idle, err := j.finder.ListIdle(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var (
		changed  int
		failures []error
	)
	for _, status := range idle {
		cmd, err := commands.NewSetDriverStatusCommand(status.DriverID(), driver.Offline.String())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if _, err = j.handler.Handle(ctx, cmd); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				j.logger.WarnContext(ctx, "Idle driver has no profile", "driver_id", status.DriverID().String())
				continue
			}
			failures = append(failures, err)
			continue
		}
		changed++
	}

	if changed > 0 {
		j.logger.InfoContext(ctx, "Idle drivers taken offline", "count", changed)
	}
	return changed, errors.Join(failures...)
}
