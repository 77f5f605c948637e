package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetDriverVerificationCommandIsNotConstructed = errors.New(
	"SetDriverVerificationCommand must be created via NewSetDriverVerificationCommand constructor",
)

// SetDriverVerificationCommand records the onboarding outcome for a driver.
type SetDriverVerificationCommand struct {
	principal identity.Principal
	driverID  kernel.UUID
	status    driver.VerificationStatus

	guard guard.ConstructorGuard
}

func NewSetDriverVerificationCommand(
	principal identity.Principal,
	driverID kernel.UUID,
	status string,
) (SetDriverVerificationCommand, error) {
	v, statusErr := driver.NewVerificationStatus(status)
	if err := errors.Join(driverID.Validate(), statusErr); err != nil {
		return SetDriverVerificationCommand{}, err
	}

	return SetDriverVerificationCommand{
		principal: principal,
		driverID:  driverID,
		status:    v,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverVerificationCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverVerificationCommandIsNotConstructed)
}

func (c SetDriverVerificationCommand) Principal() identity.Principal     { return c.principal }
func (c SetDriverVerificationCommand) DriverID() kernel.UUID             { return c.driverID }
func (c SetDriverVerificationCommand) Status() driver.VerificationStatus { return c.status }
