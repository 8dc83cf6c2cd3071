package queries

import (
	"context"
	"database/sql"
	"errors"

	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackParcelQueryHandler resolves a tracking number to delivery progress.
//
// Example:
//
//	handler := NewTrackParcelQueryHandler(db)
//	query, _ := NewTrackParcelQuery("CP001234567")
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Parcel %s is %s\n", progress.TrackingNumber, progress.Status)
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for parcel tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns errs.ObjectNotFoundError for tracking numbers that do not exist.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			sender,
			recipient,
			delivery_address,
			status,
			priority,
			payment_method,
			cod_amount_cents,
			created_at
		FROM parcels
		WHERE tracking_number = ?
	`, query.TrackingNumber().String()).Row()

	var resp TrackParcelQueryResponse
	var status, priority, paymentMethod int

	err := row.Scan(
		&resp.TrackingNumber,
		&resp.Sender,
		&resp.Recipient,
		&resp.DeliveryAddress,
		&status,
		&priority,
		&paymentMethod,
		&resp.CodAmountCents,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackParcelQueryResponse{}, errs.NewObjectNotFoundError(
				"trackingNumber", query.TrackingNumber().String())
		}
		return TrackParcelQueryResponse{}, err
	}

	resp.Status = parcel.Status(status).String()
	resp.Priority = parcel.Priority(priority).String()
	resp.RequiresCOD = parcel.PaymentMethod(paymentMethod) == parcel.COD

	return resp, nil
}
