package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChangeStatusHandler(factory commands.OrderUoWFactory, logger *slog.Logger) commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(factory, services.NewLifecycleEngine(), logger, fixedClock)
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Pending)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Confirmed, "call before arrival", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	res, err := newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, o.ID(), res.ID)
	assert.Equal(t, order.Confirmed, res.Status)
	assert.Equal(t, fixedNow, res.UpdatedAt)
	assert.Equal(t, "call before arrival", o.Notes())
	assert.Nil(t, o.DeliveredAt())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_DeliveredSetsDeliveredAt(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.OutForDelivery)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Delivered, "", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, fixedNow, *o.DeliveredAt())
}

func TestChangeOrderStatusCommandHandler_Handle_CancellationReasonOverwritesNotes(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Picking)
	cmd, err := commands.NewChangeOrderStatusCommand(
		adminPrincipal(t), o.ID(), order.Cancelled, "ignored note", "Customer unreachable", false,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	res, err := newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, res.Status)
	assert.Equal(t, "Customer unreachable", o.Notes())
}

func TestChangeOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Pending)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Picked, "", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	var illegal *errs.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "PENDING", illegal.From)
	assert.Equal(t, "PICKED", illegal.To)
	assert.Equal(t, order.Pending, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_SelfLoopRejected(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Confirmed)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Confirmed, "", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestChangeOrderStatusCommandHandler_Handle_ForcedMoveIsLoggedAsAnomaly(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Delivered)
	principal := adminPrincipal(t)
	cmd, err := commands.NewChangeOrderStatusCommand(principal, o.ID(), order.OutForDelivery, "", "", true)
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	res, err := newChangeStatusHandler(factory, logger).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, res.Status)
	assert.Nil(t, o.DeliveredAt(), "leaving DELIVERED must clear deliveredAt")
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"anomaly":true`)
	assert.Contains(t, logs.String(), `"from":"DELIVERED"`)
	assert.Contains(t, logs.String(), principal.UserID.String())
}

func TestChangeOrderStatusCommandHandler_Handle_ForcedRedeliveryKeepsDeliveredAt(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Delivered)
	original := *o.DeliveredAt()
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Delivered, "", "", true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	res, err := newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, res.Status)
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, original, *o.DeliveredAt())
	assert.NotEqual(t, fixedNow, *o.DeliveredAt())
	orderRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_LegalMoveWithForceIsNotAnomaly(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Pending)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Confirmed, "", "", true)
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, logger).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "anomaly")
}

func TestChangeOrderStatusCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	for _, role := range []identity.Role{identity.RoleCustomer, identity.RoleDeliveryDriver, ""} {
		principal := identity.Principal{UserID: kernel.NewUUID(), Role: role}
		cmd, err := commands.NewChangeOrderStatusCommand(principal, kernel.NewUUID(), order.Confirmed, "", "", false)
		require.NoError(t, err)

		factory := new(MockOrderUoWFactory)
		_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		factory.AssertNotCalled(t, "Create")
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), id, order.Confirmed, "", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Confirmed)
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), o.ID(), order.Picking, "", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(errs.NewConflictError("order", o.ID().String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), kernel.NewUUID(), order.Confirmed, "", "", false)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	_, err = newChangeStatusHandler(factory, discardLogger()).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)

	_, err := newChangeStatusHandler(factory, discardLogger()).Handle(t.Context(), commands.ChangeOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewChangeOrderStatusCommand_RejectsInvalidInput(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(adminPrincipal(t), kernel.UUID{}, order.Status("SHIPPED"), "", "", false)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}
