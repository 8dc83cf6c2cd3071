package commands_test

import (
	"testing"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInTransitParcel(t *testing.T, agentID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p := newAssignedParcel(t, agentID)
	require.NoError(t, p.Pickup())
	require.NoError(t, p.Transit())
	return p
}

func TestCompleteParcelCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()

	courierAgent := newOnlineAgent(t, 1)
	deliveredParcel := newInTransitParcel(t, courierAgent.ID())

	cmd, err := commands.NewCompleteParcelCommand(deliveredParcel.ID(), true)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("Get", ctx, deliveredParcel.ID()).Return(deliveredParcel, nil).Once(),
		agentRepo.On("Get", ctx, courierAgent.ID()).Return(courierAgent, nil).Once(),
		parcelRepo.On("Update", ctx, deliveredParcel).Return(nil).Once(),
		agentRepo.On("Update", ctx, courierAgent).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewCompleteParcelCommandHandler(factory, newFixedIdentity(t), publisher)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, parcel.Delivered, deliveredParcel.Status())
	assert.NotNil(t, deliveredParcel.Agent(), "terminal parcel should keep its agent for history")
	assert.Equal(t, 0, courierAgent.ActiveDeliveries())
	assert.Equal(t, 1, courierAgent.CompletedDeliveries())

	require.Len(t, publisher.events, 1)
	statusChanged, ok := publisher.events[0].(events.ParcelStatusChanged)
	require.True(t, ok)
	assert.Equal(t, parcel.InTransit, statusChanged.From)
	assert.Equal(t, parcel.Delivered, statusChanged.To)

	parcelRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteParcelCommandHandler_Handle_Failed(t *testing.T) {
	ctx := t.Context()

	courierAgent := newOnlineAgent(t, 1)
	failedParcel := newAssignedParcel(t, courierAgent.ID())

	cmd, err := commands.NewCompleteParcelCommand(failedParcel.ID(), false)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("Get", ctx, failedParcel.ID()).Return(failedParcel, nil).Once(),
		agentRepo.On("Get", ctx, courierAgent.ID()).Return(courierAgent, nil).Once(),
		parcelRepo.On("Update", ctx, failedParcel).Return(nil).Once(),
		agentRepo.On("Update", ctx, courierAgent).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewCompleteParcelCommandHandler(factory, newFixedIdentity(t), publisher)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, parcel.Failed, failedParcel.Status())
	assert.Equal(t, 0, courierAgent.ActiveDeliveries(),
		"a failed attempt still frees the agent's slot")
	assert.Equal(t, 0, courierAgent.CompletedDeliveries(),
		"a failed attempt must not count as a completion")
}

func TestCompleteParcelCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	pendingParcel := newPendingParcel(t)

	cmd, err := commands.NewCompleteParcelCommand(pendingParcel.ID(), true)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("Get", ctx, pendingParcel.ID()).Return(pendingParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewCompleteParcelCommandHandler(factory, newFixedIdentity(t), publisher)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	assert.Equal(t, parcel.Pending, pendingParcel.Status())
	assert.Empty(t, publisher.events)
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompleteParcelCommandHandler_Handle_NoActiveDeliveries(t *testing.T) {
	ctx := t.Context()

	// Agent with a drifted counter: the parcel points at it but the counter is zero.
	courierAgent := newOnlineAgent(t, 0)
	deliveredParcel := newInTransitParcel(t, courierAgent.ID())

	cmd, err := commands.NewCompleteParcelCommand(deliveredParcel.ID(), true)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		parcelRepo.On("Get", ctx, deliveredParcel.ID()).Return(deliveredParcel, nil).Once(),
		agentRepo.On("Get", ctx, courierAgent.ID()).Return(courierAgent, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewCompleteParcelCommandHandler(factory, newFixedIdentity(t), publisher)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, agent.ErrNoActiveDeliveries)
	assert.Empty(t, publisher.events)
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
