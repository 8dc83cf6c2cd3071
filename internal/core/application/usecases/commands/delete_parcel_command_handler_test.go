package commands_test

import (
	"testing"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	pendingParcel := newPendingParcel(t)

	cmd, err := commands.NewDeleteParcelCommand(pendingParcel.ID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, pendingParcel.ID()).Return(pendingParcel, nil).Once(),
		parcelRepo.On("Delete", ctx, pendingParcel.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteParcelCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteParcelCommandHandler_Handle_DeliveredParcel(t *testing.T) {
	ctx := t.Context()

	deliveredParcel := newInTransitParcel(t, kernel.NewUUID())
	require.NoError(t, deliveredParcel.Deliver())

	cmd, err := commands.NewDeleteParcelCommand(deliveredParcel.ID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, deliveredParcel.ID()).Return(deliveredParcel, nil).Once(),
		parcelRepo.On("Delete", ctx, deliveredParcel.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteParcelCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd), "terminal parcels can be purged")
}

func TestDeleteParcelCommandHandler_Handle_ActiveDelivery(t *testing.T) {
	ctx := t.Context()

	assignedParcel := newAssignedParcel(t, kernel.NewUUID())

	cmd, err := commands.NewDeleteParcelCommand(assignedParcel.ID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, assignedParcel.ID()).Return(assignedParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, commands.ErrParcelHasActiveDelivery)
	parcelRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeleteParcelCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewDeleteParcelCommand(parcelID)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).
			Return(nil, errs.NewObjectNotFoundError("parcelId", parcelID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
