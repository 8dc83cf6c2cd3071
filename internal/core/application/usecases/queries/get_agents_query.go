package queries

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrGetAgentsQueryIsNotConstructed = errors.New(
	"GetAgentsQuery must be created via NewGetAgentsQuery constructor",
)

// GetAgentsQuery retrieves information about all delivery agents in the fleet.
// Returns duty state and workload counters for monitoring and dispatching.
//
// Example:
//
//	query := NewGetAgentsQuery()
//	handler := NewGetAgentsQueryHandler(db)
//
//	agents, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve agents: %w", err)
//	}
//
//	for _, a := range agents {
//	    fmt.Printf("%s: %s, %d active\n", a.Name, a.Availability, a.ActiveDeliveries)
//	}
type GetAgentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAgentsQuery creates a query to retrieve all agents.
// This is a parameterless query that fetches the complete fleet.
func NewGetAgentsQuery() GetAgentsQuery {
	return GetAgentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentsQueryIsNotConstructed if validation fails.
func (q GetAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentsQueryIsNotConstructed)
}

// GetAgentsQueryResponse represents agent information in the read model.
// Availability and vehicle type come back as their wire names.
type GetAgentsQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	VehicleType         string
	VehicleModel        string
	Availability        string
	ActiveDeliveries    int
	MaxActive           int
	CompletedDeliveries int
	Rating              float64
}
