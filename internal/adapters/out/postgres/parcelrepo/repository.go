package parcelrepo

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
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

// Update saves an existing parcel to the database.
// The row's stored version must match the aggregate's version; a concurrent
// writer that got there first makes the update fail with a conflict error so
// the caller can reload and retry.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("parcel", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a parcel from the database.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id)
	}

	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a parcel by its public tracking number.
func (r *GormParcelRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (*parcel.Parcel, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tracking_number = ?", trackingNumber.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingNumber", trackingNumber.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstInPendingStatus retrieves the oldest parcel awaiting assignment.
func (r *GormParcelRepository) GetFirstInPendingStatus(ctx context.Context) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", parcel.Pending).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", "first in pending status")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInActiveStatuses retrieves all parcels currently moving through delivery:
// assigned, picked up or in transit.
func (r *GormParcelRepository) GetAllInActiveStatuses(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []parcel.Status{parcel.Assigned, parcel.PickedUp, parcel.InTransit}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
