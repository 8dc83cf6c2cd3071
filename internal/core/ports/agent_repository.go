package ports

import (
	"context"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
//
// Update implementations must enforce optimistic concurrency the same way
// ParcelRepository does: version mismatches surface as errs.ConcurrencyConflictError.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	// The agent must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent aggregate.
	// Fails with errs.ConcurrencyConflictError if the stored row moved on
	// since the aggregate was loaded.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Delete removes an agent from storage.
	// Returns errs.ObjectNotFoundError if the agent does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an agent aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAllAvailable retrieves all on-duty agents (online or busy), ordered by
	// ID so callers see a stable ordering. Capacity is checked by the
	// dispatcher, not the query.
	GetAllAvailable(ctx context.Context) ([]*agent.Agent, error)
}
