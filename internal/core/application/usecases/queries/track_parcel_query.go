package queries

import (
	"errors"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery looks up a single parcel by its public tracking number.
// This is the customer-facing lookup: it exposes delivery progress without
// requiring the internal parcel identifier.
//
// Example:
//
//	query, err := NewTrackParcelQuery("CP001234567")
//	if err != nil {
//	    return err
//	}
//	handler := NewTrackParcelQueryHandler(db)
//
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown tracking number
//	}
type TrackParcelQuery struct {
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a query to track a parcel.
// The tracking number must be well-formed; unknown numbers surface as a
// not-found error from the handler, not here.
func NewTrackParcelQuery(trackingNumber string) (TrackParcelQuery, error) {
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	if err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingNumber: tn,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackParcelQueryIsNotConstructed if validation fails.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number being looked up.
func (q TrackParcelQuery) TrackingNumber() kernel.TrackingNumber {
	return q.trackingNumber
}

// TrackParcelQueryResponse represents the public delivery progress of a parcel.
// Deliberately omits internal identifiers other than the tracking number.
type TrackParcelQueryResponse struct {
	TrackingNumber  string
	Sender          string
	Recipient       string
	DeliveryAddress string
	Status          string
	Priority        string
	RequiresCOD     bool
	CodAmountCents  int64
	CreatedAt       time.Time
}
