package commands

import (
	"context"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/ports"
)

// SetAgentAvailabilityCommandHandler handles agent duty state changes.
// A change to the same state is persisted as a no-op update and still
// published; subscribers may rely on the heartbeat.
type SetAgentAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewSetAgentAvailabilityCommandHandler creates a handler for availability operations.
// Requires an AgentUoWFactory for transactional persistence.
func NewSetAgentAvailabilityCommandHandler(
	uowFactory AgentUoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) SetAgentAvailabilityCommandHandler {
	return SetAgentAvailabilityCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the availability change command.
func (h SetAgentAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAgentAvailabilityCommand) error {
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

	updatedAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	previousAvailability := updatedAgent.Availability()

	if err = updatedAgent.SetAvailability(cmd.Availability()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, updatedAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.AgentAvailabilityChanged{
		AgentID: updatedAgent.ID(),
		From:    previousAvailability,
		To:      updatedAgent.Availability(),
		At:      h.identity.Now(),
	})

	return nil
}
