package commands

import (
	"context"
	"errors"

	"couriertrack/internal/pkg/errs"
)

// ErrParcelHasActiveDelivery is returned when deleting or mutating a parcel
// that is currently assigned, picked up or in transit.
var ErrParcelHasActiveDelivery = errors.New("parcel has an active delivery")

// DeleteParcelCommandHandler handles parcel record removal.
// Refuses to delete parcels with an active delivery; deleting such a parcel
// would strand the agent's workload counter.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewDeleteParcelCommandHandler creates a handler for parcel removal operations.
// Requires a ParcelUoWFactory for transactional persistence.
func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
// Returns errs.ConcurrencyConflictError (wrapping ErrParcelHasActiveDelivery)
// when the parcel is actively assigned; the caller unassigns or completes it
// first.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
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

	deletedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if deletedParcel.Status().IsActiveDelivery() {
		return errs.NewConcurrencyConflictErrorWithCause(
			"parcel", cmd.ParcelID(), ErrParcelHasActiveDelivery)
	}

	if err = parcelRepo.Delete(ctx, deletedParcel.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
