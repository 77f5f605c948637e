package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SettingsRefresher is satisfied by the Redis settings cache.
type SettingsRefresher interface {
	Refresh(ctx context.Context) error
}

// SettingsRefreshJob reloads the admin settings into the cache ahead of expiry so
// maintenance mode flips without waiting for the TTL.
type SettingsRefreshJob struct {
	refresher SettingsRefresher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewSettingsRefreshJob(refresher SettingsRefresher, schedule string, logger *slog.Logger) *SettingsRefreshJob {
	return &SettingsRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "settings_refresh_job"),
	}
}

func (j *SettingsRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settings refresh job started", "schedule", j.schedule)
	return nil
}

// RunOnce reloads the settings once. Failures are logged; the previous cache entry
// stays until its TTL runs out.
func (j *SettingsRefreshJob) RunOnce(ctx context.Context) error {
	if err := j.refresher.Refresh(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Settings refresh job failed", "error", err)
		return err
	}
	return nil
}

func (j *SettingsRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settings refresh job stopped")
}
