package agentrepo

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing agent to the database.
// The row's stored version must match the aggregate's version; lost updates to
// the workload counters surface as a conflict error instead of silent drift.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("agent", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes an agent from the database.
func (r *GormAgentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AgentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", id)
	}

	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves all on-duty agents (online or busy) ordered by ID.
// Capacity is checked by the dispatcher, not the query.
func (r *GormAgentRepository) GetAllAvailable(ctx context.Context) ([]*agent.Agent, error) {
	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("availability <> ?", agent.Offline).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return agents, nil
}
