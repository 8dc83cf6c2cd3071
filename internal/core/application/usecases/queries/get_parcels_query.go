// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/guard"
)

var ErrGetParcelsQueryIsNotConstructed = errors.New(
	"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
)

// GetParcelsQuery retrieves parcels for the operations view, optionally
// narrowed by status, priority and a free-text search over the tracking
// number, sender and recipient.
//
// Example:
//
//	query, err := NewGetParcelsQuery("pending", "", "")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetParcelsQueryHandler(db)
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve parcels: %w", err)
//	}
type GetParcelsQuery struct {
	status   *parcel.Status
	priority *parcel.Priority
	search   string

	guard guard.ConstructorGuard
}

// NewGetParcelsQuery creates a query to retrieve parcels.
// Empty filter strings mean no filtering on that dimension; non-empty status
// and priority values must parse as their wire names.
func NewGetParcelsQuery(statusFilter, priorityFilter, search string) (GetParcelsQuery, error) {
	q := GetParcelsQuery{
		search: search,
		guard:  guard.NewConstructorGuard(),
	}

	if statusFilter != "" {
		status, err := parcel.StatusFromString(statusFilter)
		if err != nil {
			return GetParcelsQuery{}, err
		}
		q.status = &status
	}

	if priorityFilter != "" {
		priority, err := parcel.PriorityFromString(priorityFilter)
		if err != nil {
			return GetParcelsQuery{}, err
		}
		q.priority = &priority
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelsQueryIsNotConstructed if validation fails.
func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

// Status returns the status filter, or nil when not filtering by status.
func (q GetParcelsQuery) Status() *parcel.Status {
	return q.status
}

// Priority returns the priority filter, or nil when not filtering by priority.
func (q GetParcelsQuery) Priority() *parcel.Priority {
	return q.priority
}

// Search returns the free-text filter. Empty means no text filtering.
func (q GetParcelsQuery) Search() string {
	return q.search
}

// GetParcelsQueryResponse represents parcel information in the read model.
// Statuses and priorities come back as their wire names so the response can go
// straight onto the HTTP surface.
type GetParcelsQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Sender         string
	Recipient      string
	Status         string
	Priority       string
	AgentID        *kernel.UUID
	AmountCents    int64
	CreatedAt      time.Time
}
