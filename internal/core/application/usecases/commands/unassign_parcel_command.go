package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrUnassignParcelCommandIsNotConstructed = errors.New(
	"UnassignParcelCommand must be created via NewUnassignParcelCommand constructor",
)

// UnassignParcelCommand represents returning an assigned parcel to the pending
// pool, releasing its agent. Legal only before pickup; once the agent holds
// the parcel it can only complete or fail.
//
// Example:
//
//	cmd, err := NewUnassignParcelCommand(parcelID)
//	if err != nil {
//	    return err
//	}
//	handler := NewUnassignParcelCommandHandler(uowFactory, identity, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("unassignment failed: %w", err)
//	}
type UnassignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignParcelCommand creates a command to return a parcel to the pending pool.
func NewUnassignParcelCommand(parcelID kernel.UUID) (UnassignParcelCommand, error) {
	cmd := UnassignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setParcelID(parcelID); err != nil {
		return UnassignParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnassignParcelCommandIsNotConstructed if validation fails.
func (c UnassignParcelCommand) Validate() error {
	return c.guard.Validate(ErrUnassignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to unassign.
func (c UnassignParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *UnassignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}
