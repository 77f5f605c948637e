package commands

import (
	"errors"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
	"time"
)

var ErrExpireDriverPresenceCommandIsNotConstructed = errors.New(
	"ExpireDriverPresenceCommand must be created via NewExpireDriverPresenceCommand constructor",
)

// ExpireDriverPresenceCommand marks drivers offline when their last heartbeat is
// older than ttl. It is issued by the presence sweep job, not by a user.
type ExpireDriverPresenceCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewExpireDriverPresenceCommand(ttl time.Duration) (ExpireDriverPresenceCommand, error) {
	if ttl <= 0 {
		return ExpireDriverPresenceCommand{}, errs.NewValueIsOutOfRangeError("presence ttl", ttl, "1ns", "unbounded")
	}

	return ExpireDriverPresenceCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrExpireDriverPresenceCommandIsNotConstructed)
}

func (c ExpireDriverPresenceCommand) TTL() time.Duration { return c.ttl }
