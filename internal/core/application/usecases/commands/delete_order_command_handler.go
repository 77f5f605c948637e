package commands

import (
	"context"
	"fulfillment/internal/core/domain/model/identity"
)

// DeleteOrderCommandHandler soft deletes orders.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        Clock
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		now:        orSystemClock(clock),
	}
}

// Handle deletes the order. Deleting an order that is already gone reports
// errs.ErrObjectNotFound.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireAdmin(cmd.Principal(), "delete order"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	o.MarkDeleted(h.now())

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
