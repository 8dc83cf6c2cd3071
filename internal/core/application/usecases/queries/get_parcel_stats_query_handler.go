package queries

import (
	"context"

	"couriertrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetParcelStatsQueryHandler computes dashboard statistics in a single round
// trip using filtered aggregates.
//
// Example:
//
//	handler := NewGetParcelStatsQueryHandler(db)
//	stats, err := handler.Handle(ctx, NewGetParcelStatsQuery())
//	if err != nil {
//	    return err
//	}
type GetParcelStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelStatsQueryHandler creates a handler for parcel statistics queries.
// Requires a GORM database connection for query execution.
func NewGetParcelStatsQueryHandler(db *gorm.DB) GetParcelStatsQueryHandler {
	return GetParcelStatsQueryHandler{db: db}
}

// Handle executes the statistics query.
// An empty parcels table yields a response of all zeros, not an error.
func (h GetParcelStatsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelStatsQuery,
) (GetParcelStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelStatsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = @pending),
			COUNT(*) FILTER (WHERE status = @assigned),
			COUNT(*) FILTER (WHERE status = @pickedUp),
			COUNT(*) FILTER (WHERE status = @inTransit),
			COUNT(*) FILTER (WHERE status = @delivered),
			COUNT(*) FILTER (WHERE status = @failed),
			COALESCE(SUM(amount_cents) FILTER (WHERE status = @delivered), 0),
			COALESCE(SUM(cod_amount_cents) FILTER (
				WHERE payment_method = @cod AND status NOT IN (@delivered, @failed)), 0)
		FROM parcels
	`,
		map[string]any{
			"pending":   int(parcel.Pending),
			"assigned":  int(parcel.Assigned),
			"pickedUp":  int(parcel.PickedUp),
			"inTransit": int(parcel.InTransit),
			"delivered": int(parcel.Delivered),
			"failed":    int(parcel.Failed),
			"cod":       int(parcel.COD),
		},
	).Row()

	var resp GetParcelStatsQueryResponse
	err := row.Scan(
		&resp.PendingCount,
		&resp.AssignedCount,
		&resp.PickedUpCount,
		&resp.InTransitCount,
		&resp.DeliveredCount,
		&resp.FailedCount,
		&resp.DeliveredRevenueCents,
		&resp.OutstandingCodCents,
	)
	if err != nil {
		return GetParcelStatsQueryResponse{}, err
	}

	return resp, nil
}
