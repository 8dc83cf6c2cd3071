package queries

import (
	"errors"

	"couriertrack/internal/pkg/guard"
)

var ErrGetParcelStatsQueryIsNotConstructed = errors.New(
	"GetParcelStatsQuery must be created via NewGetParcelStatsQuery constructor",
)

// GetParcelStatsQuery retrieves aggregate numbers for the operations dashboard:
// how many parcels sit in each lifecycle status, the revenue already earned
// from delivered parcels and the cash still out with agents on COD runs.
//
// Example:
//
//	query := NewGetParcelStatsQuery()
//	handler := NewGetParcelStatsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d pending, %d in flight\n", stats.PendingCount, stats.InTransitCount)
type GetParcelStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetParcelStatsQuery creates a query to retrieve parcel statistics.
func NewGetParcelStatsQuery() GetParcelStatsQuery {
	return GetParcelStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelStatsQueryIsNotConstructed if validation fails.
func (q GetParcelStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelStatsQueryIsNotConstructed)
}

// GetParcelStatsQueryResponse represents aggregate parcel numbers.
//
// DeliveredRevenueCents sums the delivery fees of delivered parcels.
// OutstandingCodCents sums the COD amounts of cash-on-delivery parcels that
// have not reached a terminal status yet: money that will move through an
// agent's hands but has not been collected.
type GetParcelStatsQueryResponse struct {
	PendingCount          int
	AssignedCount         int
	PickedUpCount         int
	InTransitCount        int
	DeliveredCount        int
	FailedCount           int
	DeliveredRevenueCents int64
	OutstandingCodCents   int64
}
