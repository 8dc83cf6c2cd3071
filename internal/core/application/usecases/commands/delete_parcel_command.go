package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand represents removing a parcel record entirely.
// Pending and terminal parcels can be deleted; a parcel with an active
// delivery must be unassigned or completed first so the agent's workload
// counter stays truthful.
//
// Example:
//
//	cmd, err := NewDeleteParcelCommand(parcelID)
//	if err != nil {
//	    return err
//	}
//	handler := NewDeleteParcelCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrencyConflict) {
//	    // parcel still has an active delivery
//	}
type DeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteParcelCommand creates a command to remove a parcel record.
func NewDeleteParcelCommand(parcelID kernel.UUID) (DeleteParcelCommand, error) {
	cmd := DeleteParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setParcelID(parcelID); err != nil {
		return DeleteParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteParcelCommandIsNotConstructed if validation fails.
func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to delete.
func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *DeleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}
