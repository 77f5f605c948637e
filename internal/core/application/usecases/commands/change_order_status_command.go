package commands

import (
	"errors"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a new lifecycle status.
//
// Force mode bypasses the strict transition table for operator repair; the
// handler records every forced move as an anomaly.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(principal, orderID, order.Cancelled, "", "customer unreachable", false)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct {
	principal          identity.Principal
	orderID            kernel.UUID
	status             order.Status
	notes              string
	cancellationReason string
	force              bool

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the order id and the requested status.
// Authorization is checked by the handler, not here.
func NewChangeOrderStatusCommand(
	principal identity.Principal,
	orderID kernel.UUID,
	status order.Status,
	notes string,
	cancellationReason string,
	force bool,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		principal:          principal,
		orderID:            orderID,
		status:             status,
		notes:              notes,
		cancellationReason: cancellationReason,
		force:              force,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Principal() identity.Principal { return c.principal }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID          { return c.orderID }
func (c ChangeOrderStatusCommand) Status() order.Status          { return c.status }
func (c ChangeOrderStatusCommand) Notes() string                 { return c.notes }
func (c ChangeOrderStatusCommand) CancellationReason() string    { return c.cancellationReason }
func (c ChangeOrderStatusCommand) Force() bool                   { return c.force }
