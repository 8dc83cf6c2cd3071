package commands

import (
	"context"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/pkg/metrics"
)

// CompleteParcelCommandHandler handles the end of delivery attempts.
// Moves the parcel to its terminal status and records the outcome on the
// agent in the same transaction, so the workload counter and the parcel
// status never drift apart.
type CompleteParcelCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewCompleteParcelCommandHandler creates a handler for completion operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewCompleteParcelCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) CompleteParcelCommandHandler {
	return CompleteParcelCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
// Delivery is legal only from in-transit; failure from any active status.
// The parcel keeps its agent link for history.
func (h CompleteParcelCommandHandler) Handle(ctx context.Context, cmd CompleteParcelCommand) error {
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

	completedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	previousStatus := completedParcel.Status()
	agentID := completedParcel.Agent()

	if cmd.Delivered() {
		err = completedParcel.Deliver()
	} else {
		err = completedParcel.Fail()
	}
	if err != nil {
		return err
	}

	completingAgent, err := agentRepo.Get(ctx, *agentID)
	if err != nil {
		return err
	}

	if err = completingAgent.RecordCompletion(cmd.Delivered()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, completedParcel); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, completingAgent); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Delivered() {
		metrics.ParcelsDeliveredTotal.Inc()
	} else {
		metrics.ParcelsFailedTotal.Inc()
	}

	h.publisher.Publish(ctx, events.ParcelStatusChanged{
		ParcelID:       completedParcel.ID(),
		TrackingNumber: completedParcel.TrackingNumber(),
		From:           previousStatus,
		To:             completedParcel.Status(),
		AgentID:        completedParcel.Agent(),
		At:             h.identity.Now(),
	})

	return nil
}
