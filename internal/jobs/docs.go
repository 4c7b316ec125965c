// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and change state only
// through application command handlers, so they publish the same events as API calls.
//
// # Available Jobs
//
// DriverPresenceJob takes drivers offline once they stayed available without any status
// update for longer than the configured idle timeout.
//
// # Usage
//
//	presence := jobs.NewDriverPresenceJob(statusRepo, setStatusHandler, nil, 15*time.Minute, "0 * * * * *", logger)
//	jobManager := jobs.NewJobManager(presence)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing run is logged and retried on the next tick. Drivers without a profile are skipped
// with a warning. Failed job starts stop any already running jobs.
package jobs
