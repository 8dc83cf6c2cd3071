package commands

import (
	"context"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/pkg/metrics"
)

// CreateParcelCommandHandler handles the business logic for parcel booking.
// Draws a fresh tracking number and booking time from the identity provider
// and creates the parcel in the pending status.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, identity)
//	cmd, _ := NewCreateParcelCommand(...)
//
//	trackingNumber, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel booking failed: %w", err)
//	}
//	// Parcel is now pending and ready for dispatch
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	identity   ports.IdentityProvider
}

// NewCreateParcelCommandHandler creates a handler for parcel booking operations.
// Requires a ParcelUoWFactory for transactional persistence and an identity
// provider for tracking numbers and booking times.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	identity ports.IdentityProvider,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

// Handle processes the parcel booking command and returns the tracking number
// assigned to the new parcel.
// Uses a transaction to ensure the parcel is properly persisted or rolled back on error.
func (h *CreateParcelCommandHandler) Handle(
	ctx context.Context,
	cmd CreateParcelCommand,
) (kernel.TrackingNumber, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingNumber{}, err
	}

	trackingNumber := h.identity.NewTrackingNumber()

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		trackingNumber,
		cmd.Sender(),
		cmd.Recipient(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.WeightKg(),
		cmd.Category(),
		cmd.Priority(),
		cmd.Payment(),
		cmd.Amount(),
		h.identity.Now(),
	)
	if err != nil {
		return kernel.TrackingNumber{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.TrackingNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return kernel.TrackingNumber{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.TrackingNumber{}, err
	}

	metrics.ParcelsCreatedTotal.Inc()
	return trackingNumber, nil
}
