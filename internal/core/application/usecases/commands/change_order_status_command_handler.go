package commands

import (
	"context"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"log/slog"
	"time"
)

// ChangeOrderStatusResult is what the caller gets back after a successful move.
type ChangeOrderStatusResult struct {
	ID        kernel.UUID
	Status    order.Status
	UpdatedAt time.Time
}

// ChangeOrderStatusCommandHandler applies lifecycle transitions.
//
// The order row is locked for the duration of the unit of work and the write is
// version-conditional, so two admins racing on the same order are serialised and
// the loser gets errs.ErrConflict instead of silently overwriting.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.LifecycleEngine
	logger     *slog.Logger
	now        Clock
}

// NewChangeOrderStatusCommandHandler creates the handler. A nil clock means time.Now.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.LifecycleEngine,
	logger *slog.Logger,
	clock Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		logger:     logger.With("component", "change_order_status"),
		now:        orSystemClock(clock),
	}
}

// Handle runs the transition.
//
// Errors:
//   - errs.ErrForbidden when the principal is not an admin
//   - errs.ErrObjectNotFound when the order does not exist or is deleted
//   - errs.ErrIllegalTransition when the table rejects the move and force is off
//   - errs.ErrConflict when another writer got there first
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err := identity.RequireAdmin(cmd.Principal(), "change order status"); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	current := o.Status()
	decision := h.engine.Decide(current, cmd.Status(), cmd.Force())
	if !decision.Allowed {
		return ChangeOrderStatusResult{}, errs.NewIllegalTransitionError(current, cmd.Status())
	}
	if decision.Forced {
		h.logger.WarnContext(ctx, "forced order status change",
			"anomaly", true,
			"order_id", o.ID().String(),
			"from", current.String(),
			"to", cmd.Status().String(),
			"actor", cmd.Principal().UserID.String(),
		)
	}

	updates := h.engine.ApplySideEffects(o, cmd.Status(), cmd.Notes(), cmd.CancellationReason(), h.now())
	if err = o.ApplyTransition(updates); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{
		ID:        o.ID(),
		Status:    o.Status(),
		UpdatedAt: o.UpdatedAt(),
	}, nil
}
