package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand represents an agent reporting a duty state
// change: coming online, going busy or signing off. Going offline does not
// touch deliveries already in flight.
//
// Example:
//
//	cmd, err := NewSetAgentAvailabilityCommand(agentID, agent.Online)
//	if err != nil {
//	    return err
//	}
//	handler := NewSetAgentAvailabilityCommandHandler(uowFactory, identity, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("availability change failed: %w", err)
//	}
type SetAgentAvailabilityCommand struct { //nolint:recvcheck //using for validation
	agentID      kernel.UUID
	availability agent.Availability

	guard guard.ConstructorGuard
}

// NewSetAgentAvailabilityCommand creates a command to change an agent's duty state.
func NewSetAgentAvailabilityCommand(
	agentID kernel.UUID,
	availability agent.Availability,
) (SetAgentAvailabilityCommand, error) {
	cmd := SetAgentAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setAvailability(availability),
	); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetAgentAvailabilityCommandIsNotConstructed if validation fails.
func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

// AgentID returns the agent changing duty state.
func (c SetAgentAvailabilityCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Availability returns the reported duty state.
func (c SetAgentAvailabilityCommand) Availability() agent.Availability {
	return c.availability
}

func (c *SetAgentAvailabilityCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *SetAgentAvailabilityCommand) setAvailability(availability agent.Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}

	c.availability = availability
	return nil
}
