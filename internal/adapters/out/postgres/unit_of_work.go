// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// A unit of work wraps a database transaction and hands out repositories bound
// to it, so compound operations that touch both a parcel and an agent either
// persist together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	if err := uow.AgentRepository().Update(ctx, a); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its own transaction state; concurrent
// operations must use separate instances.
package postgres

import (
	"context"

	"couriertrack/internal/adapters/out/postgres/agentrepo"
	"couriertrack/internal/adapters/out/postgres/parcelrepo"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction,
// isolated from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection is shared by all created instances; the
// transactions are not.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Repositories obtained from it run inside the
// transaction opened by Begin; before Begin or after Commit/Rollback they fall
// back to the main connection.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and do not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes
// a deferred rollback after a successful commit a harmless no-op.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ParcelRepository provides access to parcel persistence operations within the unit of work.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return parcelrepo.NewGormParcelRepository(db, uow)
}

// AgentRepository provides access to agent persistence operations within the unit of work.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return agentrepo.NewGormAgentRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Called by the repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
