package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordDriverHeartbeatCommandIsNotConstructed = errors.New(
	"RecordDriverHeartbeatCommand must be created via NewRecordDriverHeartbeatCommand constructor",
)

// RecordDriverHeartbeatCommand is a presence report from a driver's device.
// The profile is looked up from the caller's own user id; a driver cannot report
// presence for anyone else.
type RecordDriverHeartbeatCommand struct {
	principal identity.Principal
	online    bool

	guard guard.ConstructorGuard
}

func NewRecordDriverHeartbeatCommand(principal identity.Principal, online bool) RecordDriverHeartbeatCommand {
	return RecordDriverHeartbeatCommand{
		principal: principal,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c RecordDriverHeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrRecordDriverHeartbeatCommandIsNotConstructed)
}

func (c RecordDriverHeartbeatCommand) Principal() identity.Principal { return c.principal }
func (c RecordDriverHeartbeatCommand) Online() bool                  { return c.online }
