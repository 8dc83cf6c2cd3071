// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"couriertrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// AgentRepoFactory provides access to the agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// ParcelUoW manages transactions for parcel-only operations.
	// Used when commands only modify parcel aggregates.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// AgentUoW manages transactions for agent-only operations.
	// Used when commands only modify agent aggregates.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	// AgentUoWFactory creates new agent unit of work instances.
	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// UoW manages transactions across both parcel and agent aggregates.
	// Used for commands that coordinate changes between multiple aggregate types:
	// assignment, reassignment, unassignment and completion all move a parcel
	// and an agent counter in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcelRepo := uow.ParcelRepository()
	//   agentRepo := uow.AgentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		AgentRepoFactory
		ParcelRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
