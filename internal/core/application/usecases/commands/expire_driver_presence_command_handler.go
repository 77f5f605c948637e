package commands

import (
	"context"
)

// ExpireDriverPresenceCommandHandler flips stale online drivers to offline in a
// single statement and reports how many changed.
type ExpireDriverPresenceCommandHandler struct {
	uowFactory DriverUoWFactory
	now        Clock
}

func NewExpireDriverPresenceCommandHandler(uowFactory DriverUoWFactory, clock Clock) ExpireDriverPresenceCommandHandler {
	return ExpireDriverPresenceCommandHandler{
		uowFactory: uowFactory,
		now:        orSystemClock(clock),
	}
}

func (h ExpireDriverPresenceCommandHandler) Handle(ctx context.Context, cmd ExpireDriverPresenceCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now().UTC()
	cutoff := now.Add(-cmd.TTL())

	expired, err := uow.DriverRepository().MarkOfflineSeenBefore(ctx, cutoff, now)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
