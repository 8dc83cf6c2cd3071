package commands_test

import (
	"errors"
	"testing"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatchParcelsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	pendingParcel := newPendingParcel(t)
	testAgents := []*agent.Agent{newOnlineAgent(t, 0)}

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(pendingParcel, nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return(testAgents, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), publisher)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.Assigned, pendingParcel.Status())
	assert.Equal(t, 1, testAgents[0].ActiveDeliveries())

	require.Len(t, publisher.events, 2)
	assert.Equal(t, events.ParcelAssignedName, publisher.events[0].Name())
	assert.Equal(t, events.ParcelStatusChangedName, publisher.events[1].Name())

	parcelRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDispatchParcelsCommandHandler_Handle_PicksLeastLoadedAgent(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	pendingParcel := newPendingParcel(t)
	heavy := newOnlineAgent(t, 5)
	light := newOnlineAgent(t, 1)
	testAgents := []*agent.Agent{heavy, light}

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(pendingParcel, nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return(testAgents, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), &recordingPublisher{})
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	updatedAgent := agentRepo.Calls[1].Arguments[1].(*agent.Agent)
	assert.True(t, updatedAgent.IsEqual(light))
	require.NotNil(t, pendingParcel.Agent())
	assert.True(t, pendingParcel.Agent().IsEqual(light.ID()))
}

func TestDispatchParcelsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchParcelsCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), &recordingPublisher{})
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDispatchParcelsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestDispatchParcelsCommandHandler_Handle_NoParcelFound(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), publisher)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoParcelFound)
	assert.Empty(t, publisher.events)
}

func TestDispatchParcelsCommandHandler_Handle_NoAvailableAgents(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	pendingParcel := newPendingParcel(t)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(pendingParcel, nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), &recordingPublisher{})
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoAvailableAgentsFound)
	assert.Equal(t, parcel.Pending, pendingParcel.Status())
}

func TestDispatchParcelsCommandHandler_Handle_AllAgentsAtCapacity(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	pendingParcel := newPendingParcel(t)

	vehicle, err := agent.NewVehicle(agent.Car, "Maruti Swift")
	require.NoError(t, err)
	capped, err := agent.RestoreAgent(
		kernel.NewUUID(), "capped", "capped@couriertrack.io", "+91 1",
		vehicle, agent.Online, 2, 2, 0, 0, 0,
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(pendingParcel, nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{capped}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), &recordingPublisher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoAvailableAgentsFound)
	assert.Equal(t, parcel.Pending, pendingParcel.Status())
}

func TestDispatchParcelsCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchParcelsCommand()

	pendingParcel := newPendingParcel(t)
	testAgents := []*agent.Agent{newOnlineAgent(t, 0)}

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("GetFirstInPendingStatus", ctx).Return(pendingParcel, nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return(testAgents, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	handler := commands.NewDispatchParcelsCommandHandler(factory, newFixedIdentity(t), publisher)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	assert.Empty(t, publisher.events, "events must not be published on rollback")
}
