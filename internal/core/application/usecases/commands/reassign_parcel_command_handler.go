package commands

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/pkg/metrics"
)

// ErrParcelAlreadyWithAgent is returned when reassigning a parcel to the agent
// that already carries it.
var ErrParcelAlreadyWithAgent = errors.New("parcel is already with this agent")

// ReassignParcelCommandHandler handles moving a parcel between agents.
// The previous agent's active delivery counter goes down, the new agent's goes
// up, and the parcel's link moves, all in one transaction.
type ReassignParcelCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewReassignParcelCommandHandler creates a handler for reassignment operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewReassignParcelCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) ReassignParcelCommandHandler {
	return ReassignParcelCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the reassignment command.
// The parcel must be assigned or picked up; the new agent must be on duty with
// free capacity. Fails with ErrParcelAlreadyWithAgent when the target agent
// already carries the parcel.
func (h ReassignParcelCommandHandler) Handle(ctx context.Context, cmd ReassignParcelCommand) error {
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

	movedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	newAgent, err := agentRepo.Get(ctx, cmd.NewAgentID())
	if err != nil {
		return err
	}

	previousAgentID := movedParcel.Agent()
	if previousAgentID != nil && previousAgentID.IsEqual(newAgent.ID()) {
		return ErrParcelAlreadyWithAgent
	}

	if err = newAgent.Take(); err != nil {
		return err
	}

	if err = movedParcel.Reassign(newAgent.ID()); err != nil {
		return err
	}

	previousAgent, err := agentRepo.Get(ctx, *previousAgentID)
	if err != nil {
		return err
	}

	if err = previousAgent.Release(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, movedParcel); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, newAgent); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, previousAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.ParcelsAssignedTotal.Inc()

	h.publisher.Publish(ctx, events.ParcelAssigned{
		ParcelID:       movedParcel.ID(),
		TrackingNumber: movedParcel.TrackingNumber(),
		AgentID:        newAgent.ID(),
		At:             h.identity.Now(),
	})

	return nil
}
