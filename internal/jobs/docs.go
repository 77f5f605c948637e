// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules accept six-field expressions (with seconds) or descriptors such as
// "@every 30s".
//
// # Available Jobs
//
// 1. PresenceExpiryJob - marks drivers offline whose last heartbeat is older than the presence TTL
// 2. SettingsRefreshJob - reloads the admin settings blob into the Redis cache
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, 2*time.Minute, settingsCache, jobs.Schedules{
//		PresenceSweep:   "@every 30s",
//		SettingsRefresh: "@every 1m",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep running; a failed run is retried on the next tick.
// Failed job starts will stop any already running jobs.
package jobs
