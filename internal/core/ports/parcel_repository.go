// Package ports defines the contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Update implementations must enforce optimistic concurrency: the write applies
// only if the stored version still matches the aggregate's version, and a
// mismatch surfaces as errs.ConcurrencyConflictError.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// Fails with errs.ConcurrencyConflictError if the stored row moved on
	// since the aggregate was loaded.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Delete removes a parcel from storage.
	// Returns errs.ObjectNotFoundError if the parcel does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel by its caller-facing identifier.
	GetByTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (*parcel.Parcel, error)

	// GetFirstInPendingStatus retrieves the oldest pending parcel.
	// Used by the dispatch job to find work. Returns errs.ObjectNotFoundError
	// when no parcel is waiting.
	GetFirstInPendingStatus(ctx context.Context) (*parcel.Parcel, error)

	// GetAllInActiveStatuses retrieves all parcels currently assigned, picked up
	// or in transit.
	GetAllInActiveStatuses(ctx context.Context) ([]*parcel.Parcel, error)
}
