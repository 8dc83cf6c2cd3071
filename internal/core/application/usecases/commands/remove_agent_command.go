package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrRemoveAgentCommandIsNotConstructed = errors.New(
	"RemoveAgentCommand must be created via NewRemoveAgentCommand constructor",
)

// RemoveAgentCommand represents removing an agent from the fleet.
// An agent still carrying deliveries cannot be removed; its parcels must be
// reassigned or completed first.
//
// Example:
//
//	cmd, err := NewRemoveAgentCommand(agentID)
//	if err != nil {
//	    return err
//	}
//	handler := NewRemoveAgentCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrencyConflict) {
//	    // agent still has deliveries in flight
//	}
type RemoveAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveAgentCommand creates a command to remove an agent from the fleet.
func NewRemoveAgentCommand(agentID kernel.UUID) (RemoveAgentCommand, error) {
	cmd := RemoveAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAgentID(agentID); err != nil {
		return RemoveAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveAgentCommandIsNotConstructed if validation fails.
func (c RemoveAgentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAgentCommandIsNotConstructed)
}

// AgentID returns the agent to remove.
func (c RemoveAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *RemoveAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
