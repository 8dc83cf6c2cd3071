package queries

import (
	"context"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentsQueryHandler retrieves all agent information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetAgentsQueryHandler(db)
//	query := NewGetAgentsQuery()
//
//	agents, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get agents: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Fleet size: %d\n", len(agents))
type GetAgentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentsQueryHandler creates a handler for agent retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAgentsQueryHandler(db *gorm.DB) GetAgentsQueryHandler {
	return GetAgentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all agents.
// Returns a slice of agent read models sorted by name.
func (h GetAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetAgentsQuery,
) ([]GetAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]GetAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_type,
			vehicle_model,
			availability,
			active_deliveries,
			max_active,
			completed_deliveries,
			rating
		FROM agents
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAgentsQueryResponse
		var id uuid.UUID
		var vehicleType, availability int

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&vehicleType,
			&resp.VehicleModel,
			&availability,
			&resp.ActiveDeliveries,
			&resp.MaxActive,
			&resp.CompletedDeliveries,
			&resp.Rating,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = agentID

		resp.VehicleType = agent.VehicleType(vehicleType).String()
		resp.Availability = agent.Availability(availability).String()
		agents = append(agents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
