package commands

import (
	"context"
	"fulfillment/internal/core/domain/model/identity"
)

// RecordDriverHeartbeatCommandHandler writes presence reports straight to the driver
// directory. Presence is never cached, so the next candidate listing sees it.
type RecordDriverHeartbeatCommandHandler struct {
	uowFactory DriverUoWFactory
	now        Clock
}

func NewRecordDriverHeartbeatCommandHandler(uowFactory DriverUoWFactory, clock Clock) RecordDriverHeartbeatCommandHandler {
	return RecordDriverHeartbeatCommandHandler{
		uowFactory: uowFactory,
		now:        orSystemClock(clock),
	}
}

func (h RecordDriverHeartbeatCommandHandler) Handle(ctx context.Context, cmd RecordDriverHeartbeatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireRole(
		cmd.Principal(),
		"report driver presence",
		identity.RoleDeliveryDriver,
		identity.RolePickupHelper,
	); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	d, err := driverRepo.GetByUserID(ctx, cmd.Principal().UserID)
	if err != nil {
		return err
	}

	if err = d.SetPresence(cmd.Online(), h.now()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
