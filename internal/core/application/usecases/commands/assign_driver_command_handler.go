package commands

import (
	"context"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"log/slog"
)

// AssignDriverResult reports the binding after the command.
// Changed is false when the driver was already assigned and nothing was written.
type AssignDriverResult struct {
	OrderID  kernel.UUID
	DriverID kernel.UUID
	Changed  bool
}

// AssignDriverCommandHandler is the write side of the assignment service.
//
// Eligibility is the engine's hard predicate (role, verification, not deleted).
// Presence is not checked: an admin may assign an offline driver, which is only
// logged. The automatic candidate list is stricter and filters offline drivers out.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	logger     *slog.Logger
	now        Clock
}

// NewAssignDriverCommandHandler creates the handler. A nil clock means time.Now.
func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	logger *slog.Logger,
	clock Clock,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		logger:     logger.With("component", "assign_driver"),
		now:        orSystemClock(clock),
	}
}

// Handle assigns the driver. Assigning the driver that is already bound succeeds
// without touching the store.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (AssignDriverResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignDriverResult{}, err
	}
	if err := identity.RequireAdmin(cmd.Principal(), "assign driver"); err != nil {
		return AssignDriverResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignDriverResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return AssignDriverResult{}, err
	}

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return AssignDriverResult{}, err
	}

	if reason := h.engine.ExplainIneligibility(d); reason != "" {
		return AssignDriverResult{}, errs.NewIneligibleDriverError(d.ID().String(), reason)
	}
	if !d.IsOnline() {
		h.logger.InfoContext(ctx, "assigning offline driver",
			"order_id", o.ID().String(),
			"driver_id", d.ID().String(),
		)
	}

	changed, err := o.AssignDriver(d.ID(), h.now())
	if err != nil {
		return AssignDriverResult{}, err
	}

	result := AssignDriverResult{OrderID: o.ID(), DriverID: d.ID(), Changed: changed}
	if !changed {
		return result, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AssignDriverResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignDriverResult{}, err
	}

	return result, nil
}
