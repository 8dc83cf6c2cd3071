package commands

import (
	"errors"

	"couriertrack/internal/pkg/guard"
)

var ErrDispatchParcelsCommandIsNotConstructed = errors.New(
	"DispatchParcelsCommand must be created via NewDispatchParcelsCommand constructor",
)

// DispatchParcelsCommand triggers the automatic assignment of an available
// agent to the oldest pending parcel. This command represents the business
// operation of matching delivery capacity with waiting shipments; the
// dispatch job issues it every second.
//
// Example:
//
//	cmd := NewDispatchParcelsCommand()
//	handler := NewDispatchParcelsCommandHandler(uowFactory, identity, publisher)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("No parcels to dispatch or no available agents: %v", err)
//	}
type DispatchParcelsCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchParcelsCommand creates a new command to trigger automatic dispatch.
// This is a parameterless command that initiates the agent-parcel matching process.
func NewDispatchParcelsCommand() DispatchParcelsCommand {
	return DispatchParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchParcelsCommandIsNotConstructed if validation fails.
func (c *DispatchParcelsCommand) Validate() error {
	return c.guard.Validate(
		ErrDispatchParcelsCommandIsNotConstructed,
	)
}
