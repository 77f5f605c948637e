package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand creates a fulfillment profile for an existing user account.
type RegisterDriverCommand struct {
	principal identity.Principal
	driverID  kernel.UUID
	userID    kernel.UUID
	role      driver.Role

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand validates the ids and the fulfillment role.
func NewRegisterDriverCommand(
	principal identity.Principal,
	driverID kernel.UUID,
	userID kernel.UUID,
	role driver.Role,
) (RegisterDriverCommand, error) {
	if err := errors.Join(driverID.Validate(), userID.Validate(), role.Validate()); err != nil {
		return RegisterDriverCommand{}, err
	}

	return RegisterDriverCommand{
		principal: principal,
		driverID:  driverID,
		userID:    userID,
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) Principal() identity.Principal { return c.principal }
func (c RegisterDriverCommand) DriverID() kernel.UUID         { return c.driverID }
func (c RegisterDriverCommand) UserID() kernel.UUID           { return c.userID }
func (c RegisterDriverCommand) Role() driver.Role             { return c.role }
