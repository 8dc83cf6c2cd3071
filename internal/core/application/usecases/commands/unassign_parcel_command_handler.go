package commands

import (
	"context"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/ports"
)

// UnassignParcelCommandHandler handles returning a parcel to the pending pool.
// Clears the agent link and releases the agent's workload slot in a single
// transaction.
type UnassignParcelCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewUnassignParcelCommandHandler creates a handler for unassignment operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewUnassignParcelCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) UnassignParcelCommandHandler {
	return UnassignParcelCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the unassignment command.
// The parcel must be in the assigned status; picked up and in-transit parcels
// fail with parcel.ErrInvalidTransition.
func (h UnassignParcelCommandHandler) Handle(ctx context.Context, cmd UnassignParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	agentRepo := uow.AgentRepository()

	unassignedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	previousAgentID := unassignedParcel.Agent()

	if err = unassignedParcel.Unassign(); err != nil {
		return err
	}

	previousAgent, err := agentRepo.Get(ctx, *previousAgentID)
	if err != nil {
		return err
	}

	if err = previousAgent.Release(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, unassignedParcel); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, previousAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.ParcelStatusChanged{
		ParcelID:       unassignedParcel.ID(),
		TrackingNumber: unassignedParcel.TrackingNumber(),
		From:           parcel.Assigned,
		To:             parcel.Pending,
		AgentID:        nil,
		At:             h.identity.Now(),
	})

	return nil
}
