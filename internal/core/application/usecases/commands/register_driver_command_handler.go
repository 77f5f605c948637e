package commands

import (
	"context"
	"errors"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/pkg/errs"
)

// RegisterDriverCommandHandler creates driver profiles. New profiles start
// unverified and offline; a user may own at most one live profile.
type RegisterDriverCommandHandler struct {
	uowFactory CatalogDriverUoWFactory
	now        Clock
}

// NewRegisterDriverCommandHandler creates the handler. A nil clock means time.Now.
func NewRegisterDriverCommandHandler(uowFactory CatalogDriverUoWFactory, clock Clock) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
		now:        orSystemClock(clock),
	}
}

// Handle registers the driver and returns the new profile.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := identity.RequireAdmin(cmd.Principal(), "register driver"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.CatalogRepository().GetUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	driverRepo := uow.DriverRepository()

	_, err = driverRepo.GetByUserID(ctx, cmd.UserID())
	switch {
	case err == nil:
		return nil, errs.NewAlreadyExistsError("driver profile for user", cmd.UserID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	d, err := driver.NewDriver(cmd.DriverID(), user.ID, user.Name, user.Phone, cmd.Role(), h.now())
	if err != nil {
		return nil, err
	}

	if err = driverRepo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
