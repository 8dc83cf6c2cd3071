package commands

import (
	"context"

	"couriertrack/internal/core/domain/model/agent"
)

// CreateAgentCommandHandler handles the business logic for agent registration.
// New agents start offline; contact details are validated by the aggregate.
//
// Example:
//
//	handler := NewCreateAgentCommandHandler(uowFactory)
//	cmd, _ := NewCreateAgentCommand(...)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("agent registration failed: %w", err)
//	}
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewCreateAgentCommandHandler creates a handler for agent registration operations.
// Requires an AgentUoWFactory for transactional persistence.
func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agent registration command.
// Uses a transaction to ensure the agent is properly persisted or rolled back on error.
func (h *CreateAgentCommandHandler) Handle(ctx context.Context, cmd CreateAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newAgent, err := agent.NewAgent(
		cmd.AgentID(),
		cmd.Name(),
		cmd.Email(),
		cmd.Phone(),
		cmd.Vehicle(),
		cmd.MaxActive(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AgentRepository().Add(ctx, newAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
