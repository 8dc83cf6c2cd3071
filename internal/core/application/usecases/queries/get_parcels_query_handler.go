package queries

import (
	"context"
	"strings"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelsQueryHandler retrieves parcel information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetParcelsQueryHandler(db)
//	query, _ := NewGetParcelsQuery("", "high", "")
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get parcels: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d parcels\n", len(parcels))
type GetParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsQueryHandler creates a handler for parcel retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetParcelsQueryHandler(db *gorm.DB) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{db: db}
}

// Handle executes the query to retrieve parcels matching the filters.
// Returns a slice of parcel read models, newest first.
func (h GetParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelsQuery,
) ([]GetParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := strings.Builder{}
	sql.WriteString(`
		SELECT
			id,
			tracking_number,
			sender,
			recipient,
			status,
			priority,
			agent_id,
			amount_cents,
			created_at
		FROM parcels
		WHERE 1=1`)

	args := make([]any, 0, 4)

	if status := query.Status(); status != nil {
		sql.WriteString(" AND status = ?")
		args = append(args, int(*status))
	}

	if priority := query.Priority(); priority != nil {
		sql.WriteString(" AND priority = ?")
		args = append(args, int(*priority))
	}

	if search := query.Search(); search != "" {
		sql.WriteString(" AND (tracking_number ILIKE ? OR sender ILIKE ? OR recipient ILIKE ?)")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	sql.WriteString(" ORDER BY created_at DESC")

	parcels := make([]GetParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetParcelsQueryResponse
		var id uuid.UUID
		var agentID *uuid.UUID
		var status, priority int

		err = rows.Scan(
			&id,
			&resp.TrackingNumber,
			&resp.Sender,
			&resp.Recipient,
			&status,
			&priority,
			&agentID,
			&resp.AmountCents,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID

		if agentID != nil {
			aID, agentErr := kernel.UUIDFromBytes((*agentID)[:])
			if agentErr != nil {
				return nil, agentErr
			}
			resp.AgentID = &aID
		}

		resp.Status = parcel.Status(status).String()
		resp.Priority = parcel.Priority(priority).String()
		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
