// Package agentrepo provides data transfer objects and mapping functions for agent persistence.
// This package implements the repository pattern for the agent domain aggregate, handling
// the conversion between domain entities and database representations.
package agentrepo

import (
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// Maps agent domain entities to relational database tables, indexed by
// availability for the dispatcher's candidate lookup.
type AgentDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Email               string
	Phone               string
	Vehicle             VehicleDTO `gorm:"embedded;embeddedPrefix:vehicle_"`
	Availability        int        `gorm:"index"`
	ActiveDeliveries    int
	MaxActive           int
	CompletedDeliveries int
	Rating              float64
	Version             int
}

// TableName specifies the database table name for agent entities.
// Overrides GORM's default naming convention to use "agents".
func (AgentDTO) TableName() string {
	return "agents"
}

// VehicleDTO represents the embedded vehicle columns within the agent table.
type VehicleDTO struct {
	Type  int
	Model string
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:    a.ID().Bytes(),
		Name:  a.Name(),
		Email: a.Email(),
		Phone: a.Phone(),
		Vehicle: VehicleDTO{
			Type:  int(a.Vehicle().Type()),
			Model: a.Vehicle().Model(),
		},
		Availability:        int(a.Availability()),
		ActiveDeliveries:    a.ActiveDeliveries(),
		MaxActive:           a.MaxActive(),
		CompletedDeliveries: a.CompletedDeliveries(),
		Rating:              a.Rating(),
		Version:             a.Version(),
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
// Reconstructs the complete aggregate including duty state and workload counters
// using RestoreAgent.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := agent.NewVehicle(agent.VehicleType(dto.Vehicle.Type), dto.Vehicle.Model)
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		vehicle,
		agent.Availability(dto.Availability),
		dto.ActiveDeliveries,
		dto.MaxActive,
		dto.CompletedDeliveries,
		dto.Rating,
		dto.Version,
	)
}
