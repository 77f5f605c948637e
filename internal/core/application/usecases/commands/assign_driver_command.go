package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand binds an order to a driver, replacing any previous driver.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(principal, orderID, driverID)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIneligibleDriver) {
//	    // unverified, wrong role or deleted driver
//	}
type AssignDriverCommand struct {
	principal identity.Principal
	orderID   kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand validates both ids.
func NewAssignDriverCommand(principal identity.Principal, orderID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		principal: principal,
		orderID:   orderID,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Principal() identity.Principal { return c.principal }
func (c AssignDriverCommand) OrderID() kernel.UUID          { return c.orderID }
func (c AssignDriverCommand) DriverID() kernel.UUID         { return c.driverID }
