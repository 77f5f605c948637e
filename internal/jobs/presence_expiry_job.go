package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PresenceExpirer is satisfied by commands.ExpireDriverPresenceCommandHandler.
type PresenceExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireDriverPresenceCommand) (int64, error)
}

// PresenceExpiryJob marks drivers offline when their last heartbeat is older than
// the presence TTL, so a crashed app does not leave a driver listed as available.
type PresenceExpiryJob struct {
	handler  PresenceExpirer
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPresenceExpiryJob creates the sweep. schedule is a six-field cron expression
// or a descriptor such as "@every 30s".
func NewPresenceExpiryJob(handler PresenceExpirer, ttl time.Duration, schedule string, logger *slog.Logger) *PresenceExpiryJob {
	return &PresenceExpiryJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "presence_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *PresenceExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// RunOnce performs a single sweep and returns how many drivers went offline.
func (j *PresenceExpiryJob) RunOnce(ctx context.Context) int64 {
	cmd, err := commands.NewExpireDriverPresenceCommand(j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence expiry job misconfigured", "error", err)
		return 0
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence expiry job failed", "error", err)
		return 0
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Marked stale drivers offline", "count", n)
	}
	return n
}

// Stop stops the sweep.
func (j *PresenceExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Presence expiry job stopped")
}
