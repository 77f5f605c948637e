package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules configures when each job runs.
type Schedules struct {
	PresenceSweep   string
	SettingsRefresh string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	presenceExpiryJob  *PresenceExpiryJob
	settingsRefreshJob *SettingsRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the use cases as dependencies to wire up the job execution.
func NewJobManager(
	expirer PresenceExpirer,
	presenceTTL time.Duration,
	refresher SettingsRefresher,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		presenceExpiryJob:  NewPresenceExpiryJob(expirer, presenceTTL, schedules.PresenceSweep, logger),
		settingsRefreshJob: NewSettingsRefreshJob(refresher, schedules.SettingsRefresh, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.presenceExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start presence expiry job: %w", err)
	}

	if err := jm.settingsRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.presenceExpiryJob.Stop()
		return fmt.Errorf("failed to start settings refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.settingsRefreshJob.Stop()
	jm.presenceExpiryJob.Stop()
}
