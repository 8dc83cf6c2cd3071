package commands

import (
	"context"
	"errors"

	"couriertrack/internal/pkg/errs"
)

// ErrAgentHasActiveDeliveries is returned when removing an agent that still
// carries parcels.
var ErrAgentHasActiveDeliveries = errors.New("agent has active deliveries")

// RemoveAgentCommandHandler handles removing agents from the fleet.
// Refuses to remove agents with deliveries in flight; their parcels would be
// left pointing at a missing agent.
type RemoveAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewRemoveAgentCommandHandler creates a handler for agent removal operations.
// Requires an AgentUoWFactory for transactional persistence.
func NewRemoveAgentCommandHandler(uowFactory AgentUoWFactory) RemoveAgentCommandHandler {
	return RemoveAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agent removal command.
// Returns errs.ConcurrencyConflictError (wrapping ErrAgentHasActiveDeliveries)
// when the agent still carries parcels.
func (h RemoveAgentCommandHandler) Handle(ctx context.Context, cmd RemoveAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	removedAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if removedAgent.ActiveDeliveries() > 0 {
		return errs.NewConcurrencyConflictErrorWithCause(
			"agent", cmd.AgentID(), ErrAgentHasActiveDeliveries)
	}

	if err = agentRepo.Delete(ctx, removedAgent.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
