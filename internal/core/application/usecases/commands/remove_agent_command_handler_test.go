package commands_test

import (
	"testing"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveAgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	idleAgent := newOnlineAgent(t, 0)

	cmd, err := commands.NewRemoveAgentCommand(idleAgent.ID())
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, idleAgent.ID()).Return(idleAgent, nil).Once(),
		agentRepo.On("Delete", ctx, idleAgent.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemoveAgentCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRemoveAgentCommandHandler_Handle_ActiveDeliveries(t *testing.T) {
	ctx := t.Context()

	busyAgent := newOnlineAgent(t, 2)

	cmd, err := commands.NewRemoveAgentCommand(busyAgent.ID())
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, busyAgent.ID()).Return(busyAgent, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemoveAgentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, commands.ErrAgentHasActiveDeliveries)
	agentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRemoveAgentCommandHandler_Handle_OfflineWithHistory(t *testing.T) {
	ctx := t.Context()

	// Off duty with no deliveries in flight; past completions do not block removal.
	retiredAgent := newOfflineAgent(t)

	cmd, err := commands.NewRemoveAgentCommand(retiredAgent.ID())
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, retiredAgent.ID()).Return(retiredAgent, nil).Once(),
		agentRepo.On("Delete", ctx, retiredAgent.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemoveAgentCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))
}
