package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand represents an operator explicitly assigning a parcel to
// a chosen agent, bypassing the automatic dispatcher. The parcel must be
// pending and the agent must be on duty with free capacity.
//
// Example:
//
//	cmd, err := NewAssignParcelCommand(parcelID, agentID)
//	if err != nil {
//	    return err
//	}
//	handler := NewAssignParcelCommandHandler(uowFactory, identity, publisher)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, parcel.ErrParcelAlreadyAssigned):
//	    // parcel already has an agent
//	case errors.Is(err, agent.ErrAgentUnavailable):
//	    // agent is offline or at capacity
//	}
type AssignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	agentID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignParcelCommand creates a command to assign a parcel to a specific agent.
func NewAssignParcelCommand(parcelID, agentID kernel.UUID) (AssignParcelCommand, error) {
	cmd := AssignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAgentID(agentID),
	); err != nil {
		return AssignParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignParcelCommandIsNotConstructed if validation fails.
func (c AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to assign.
func (c AssignParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AgentID returns the agent chosen by the operator.
func (c AssignParcelCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *AssignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignParcelCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
