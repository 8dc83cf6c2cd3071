package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrCompleteParcelCommandIsNotConstructed = errors.New(
	"CompleteParcelCommand must be created via NewCompleteParcelCommand constructor",
)

// CompleteParcelCommand represents the end of a delivery attempt: either the
// parcel reached its recipient (delivered) or the attempt was abandoned
// (failed). Both outcomes are terminal and free the agent's workload slot;
// only a delivery counts toward the agent's lifetime total.
//
// Example:
//
//	cmd, err := NewCompleteParcelCommand(parcelID, true)
//	if err != nil {
//	    return err
//	}
//	handler := NewCompleteParcelCommandHandler(uowFactory, identity, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("completion failed: %w", err)
//	}
type CompleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	delivered bool

	guard guard.ConstructorGuard
}

// NewCompleteParcelCommand creates a command to finish a delivery attempt.
// Set delivered to false to mark the attempt as failed.
func NewCompleteParcelCommand(parcelID kernel.UUID, delivered bool) (CompleteParcelCommand, error) {
	cmd := CompleteParcelCommand{
		delivered: delivered,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setParcelID(parcelID); err != nil {
		return CompleteParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteParcelCommandIsNotConstructed if validation fails.
func (c CompleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrCompleteParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel whose delivery attempt ended.
func (c CompleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Delivered reports whether the parcel reached its recipient.
func (c CompleteParcelCommand) Delivered() bool {
	return c.delivered
}

func (c *CompleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}
