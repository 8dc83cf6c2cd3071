package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// Compound operations that touch both a parcel and an agent (assignment,
// completion, reassignment) go through a single UnitOfWork so either both
// aggregates persist or neither does.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	ParcelRepository() ParcelRepository

	// AgentRepository returns an AgentRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	AgentRepository() AgentRepository
}
