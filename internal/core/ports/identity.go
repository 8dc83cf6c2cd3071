package ports

import (
	"time"

	"couriertrack/internal/core/domain/model/kernel"
)

// IdentityProvider supplies the ambient inputs the domain needs when booking
// parcels: the current time and fresh tracking numbers. Keeping both behind a
// port makes command handlers deterministic under test.
type IdentityProvider interface {
	// Now returns the current time.
	Now() time.Time

	// NewTrackingNumber returns a fresh caller-facing identifier.
	// Uniqueness is enforced by the parcel store, not the generator; callers
	// retry on a duplicate.
	NewTrackingNumber() kernel.TrackingNumber
}
