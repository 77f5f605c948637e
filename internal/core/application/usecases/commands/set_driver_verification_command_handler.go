package commands

import (
	"context"
	"fulfillment/internal/core/domain/model/identity"
)

// SetDriverVerificationCommandHandler stores the verification label the onboarding
// workflow decided on. Only VERIFIED drivers become assignable.
type SetDriverVerificationCommandHandler struct {
	uowFactory DriverUoWFactory
	now        Clock
}

func NewSetDriverVerificationCommandHandler(uowFactory DriverUoWFactory, clock Clock) SetDriverVerificationCommandHandler {
	return SetDriverVerificationCommandHandler{
		uowFactory: uowFactory,
		now:        orSystemClock(clock),
	}
}

func (h SetDriverVerificationCommandHandler) Handle(ctx context.Context, cmd SetDriverVerificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireAdmin(cmd.Principal(), "set driver verification"); err != nil {
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

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = d.SetVerification(cmd.Status(), h.now()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
