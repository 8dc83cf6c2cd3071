package commands

import (
	"errors"
	"fmt"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
	)
	// ErrTargetStatusIsInvalid is returned for target statuses this command does
	// not cover. Assignment, delivery and failure have their own commands since
	// they also move agent state.
	ErrTargetStatusIsInvalid = errors.New("target status must be picked-up or in-transit")
)

// UpdateParcelStatusCommand represents an agent reporting progress on a parcel:
// collecting it (picked-up) or heading to the delivery address (in-transit).
//
// Only those two mid-lifecycle statuses are reachable here. Moving a parcel
// into assigned, delivered or failed changes agent workload too and goes
// through AssignParcelCommand or CompleteParcelCommand instead.
//
// Example:
//
//	cmd, err := NewUpdateParcelStatusCommand(parcelID, parcel.PickedUp)
//	if err != nil {
//	    return err
//	}
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory, identity, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update failed: %w", err)
//	}
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	targetStatus parcel.Status

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to report delivery progress.
// The target status must be parcel.PickedUp or parcel.InTransit.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	targetStatus parcel.Status,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTargetStatus(targetStatus),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateParcelStatusCommandIsNotConstructed if validation fails.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the parcel whose status is reported.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// TargetStatus returns the reported status.
func (c UpdateParcelStatusCommand) TargetStatus() parcel.Status {
	return c.targetStatus
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setTargetStatus(targetStatus parcel.Status) error {
	if targetStatus != parcel.PickedUp && targetStatus != parcel.InTransit {
		return fmt.Errorf("%w: got %s", ErrTargetStatusIsInvalid, targetStatus)
	}

	c.targetStatus = targetStatus
	return nil
}
