package commands

import (
	"context"

	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/ports"
)

// UpdateParcelStatusCommandHandler handles delivery progress reports.
// Pickup and transit updates only touch the parcel aggregate; the agent link
// and workload counters stay as they are.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	identity   ports.IdentityProvider
	publisher  ports.EventPublisher
}

// NewUpdateParcelStatusCommandHandler creates a handler for progress report operations.
// Requires a ParcelUoWFactory for transactional persistence.
func NewUpdateParcelStatusCommandHandler(
	uowFactory ParcelUoWFactory,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		publisher:  publisher,
	}
}

// Handle processes the progress report.
// The lifecycle state machine rejects skipped steps: a parcel can only be
// picked up from assigned and only enter transit from picked-up.
func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) error {
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

	updatedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	previousStatus := updatedParcel.Status()

	switch cmd.TargetStatus() {
	case parcel.PickedUp:
		err = updatedParcel.Pickup()
	case parcel.InTransit:
		err = updatedParcel.Transit()
	default:
		err = ErrTargetStatusIsInvalid
	}
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, updatedParcel); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.ParcelStatusChanged{
		ParcelID:       updatedParcel.ID(),
		TrackingNumber: updatedParcel.TrackingNumber(),
		From:           previousStatus,
		To:             updatedParcel.Status(),
		AgentID:        updatedParcel.Agent(),
		At:             h.identity.Now(),
	})

	return nil
}
