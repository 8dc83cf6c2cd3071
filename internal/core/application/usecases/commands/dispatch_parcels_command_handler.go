package commands

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/domain/services"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/metrics"
)

var (
	ErrNoAvailableAgentsFound = errors.New("no available agents found")
	ErrNoParcelFound          = errors.New("no parcel found")
)

// DispatchParcelsCommandHandler orchestrates automatic parcel assignment.
// Finds the oldest pending parcel and matches it with the least loaded on-duty
// agent via ParcelDispatcher. Ensures transactional consistency when updating
// both parcel and agent states.
//
// Example:
//
//	handler := NewDispatchParcelsCommandHandler(uowFactory, identity, publisher)
//	cmd := NewDispatchParcelsCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoParcelFound):
//	    log.Println("No pending parcels")
//	case errors.Is(err, ErrNoAvailableAgentsFound):
//	    log.Println("No agent on duty with free capacity")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	default:
//	    log.Println("Parcel dispatched successfully")
//	}
type DispatchParcelsCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewDispatchParcelsCommandHandler creates a handler for automatic dispatch operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewDispatchParcelsCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) DispatchParcelsCommandHandler {
	return DispatchParcelsCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the automatic dispatch command.
// Retrieves the oldest pending parcel, finds available agents, and uses
// ParcelDispatcher to select the least loaded one. Updates both entities
// within a single transaction. Returns specific errors for no parcels
// (ErrNoParcelFound) or no agents (ErrNoAvailableAgentsFound).
func (h DispatchParcelsCommandHandler) Handle(ctx context.Context, cmd DispatchParcelsCommand) error {
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

	pendingParcel, err := parcelRepo.GetFirstInPendingStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoParcelFound
	}
	if err != nil {
		return err
	}

	agents, err := agentRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		return ErrNoAvailableAgentsFound
	}

	assignedAgent, err := services.NewParcelDispatcher().Dispatch(pendingParcel, agents)
	if errors.Is(err, services.ErrAgentNotFound) {
		return ErrNoAvailableAgentsFound
	}
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, pendingParcel); err != nil {
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
			ParcelID:       pendingParcel.ID(),
			TrackingNumber: pendingParcel.TrackingNumber(),
			AgentID:        agentID,
			At:             now,
		},
		events.ParcelStatusChanged{
			ParcelID:       pendingParcel.ID(),
			TrackingNumber: pendingParcel.TrackingNumber(),
			From:           parcel.Pending,
			To:             parcel.Assigned,
			AgentID:        &agentID,
			At:             now,
		},
	)

	return nil
}
