package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrReassignParcelCommandIsNotConstructed = errors.New(
	"ReassignParcelCommand must be created via NewReassignParcelCommand constructor",
)

// ReassignParcelCommand represents moving an active parcel from its current
// agent to a different one, e.g. when the original agent's shift ends. The
// parcel keeps its status; both agents' workload counters move with it.
//
// Example:
//
//	cmd, err := NewReassignParcelCommand(parcelID, newAgentID)
//	if err != nil {
//	    return err
//	}
//	handler := NewReassignParcelCommandHandler(uowFactory, identity, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("reassignment failed: %w", err)
//	}
type ReassignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	newAgentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignParcelCommand creates a command to hand a parcel to a different agent.
func NewReassignParcelCommand(parcelID, newAgentID kernel.UUID) (ReassignParcelCommand, error) {
	cmd := ReassignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setNewAgentID(newAgentID),
	); err != nil {
		return ReassignParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReassignParcelCommandIsNotConstructed if validation fails.
func (c ReassignParcelCommand) Validate() error {
	return c.guard.Validate(ErrReassignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to reassign.
func (c ReassignParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewAgentID returns the agent taking over the parcel.
func (c ReassignParcelCommand) NewAgentID() kernel.UUID {
	return c.newAgentID
}

func (c *ReassignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ReassignParcelCommand) setNewAgentID(newAgentID kernel.UUID) error {
	if err := newAgentID.Validate(); err != nil {
		return err
	}

	c.newAgentID = newAgentID
	return nil
}
