package commands

import (
	"context"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/pkg/metrics"
)

// AssignParcelCommandHandler handles explicit parcel-to-agent assignment.
// Moves the parcel to the assigned status and bumps the agent's active
// delivery counter in a single transaction; either both changes persist or
// neither does.
type AssignParcelCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewAssignParcelCommandHandler creates a handler for explicit assignment operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignParcelCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the explicit assignment command.
// Loads both aggregates, applies the assignment on each, and persists them
// within a single transaction. Events are published only after the commit so
// subscribers never observe an assignment that was rolled back.
func (h AssignParcelCommandHandler) Handle(ctx context.Context, cmd AssignParcelCommand) error {
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

	assignedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	assignedAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if err = assignedAgent.Take(); err != nil {
		return err
	}

	if err = assignedParcel.Assign(assignedAgent.ID()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, assignedParcel); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, assignedAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.ParcelsAssignedTotal.Inc()

	now := h.identity.Now()
	agentID := assignedAgent.ID()
	h.publisher.Publish(ctx,
		events.ParcelAssigned{
			ParcelID:       assignedParcel.ID(),
			TrackingNumber: assignedParcel.TrackingNumber(),
			AgentID:        agentID,
			At:             now,
		},
		events.ParcelStatusChanged{
			ParcelID:       assignedParcel.ID(),
			TrackingNumber: assignedParcel.TrackingNumber(),
			From:           parcel.Pending,
			To:             parcel.Assigned,
			AgentID:        &agentID,
			At:             now,
		},
	)

	return nil
}
