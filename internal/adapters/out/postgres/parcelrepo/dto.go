// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational database tables with proper indexing
// for efficient querying by status, tracking number and agent assignment.
type ParcelDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber  string    `gorm:"uniqueIndex"`
	Sender          string
	Recipient       string
	PickupAddress   string
	DeliveryAddress string
	WeightKg        float64
	Category        string
	Priority        int
	PaymentMethod   int
	CodAmountCents  int64
	AmountCents     int64
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"index"`
	CreatedAt       time.Time
	Version         int
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Maps all parcel attributes including optional agent assignment.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var agentID *uuid.UUID
	if id := p.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return ParcelDTO{
		ID:              p.ID().Bytes(),
		TrackingNumber:  p.TrackingNumber().String(),
		Sender:          p.Sender(),
		Recipient:       p.Recipient(),
		PickupAddress:   p.PickupAddress(),
		DeliveryAddress: p.DeliveryAddress(),
		WeightKg:        p.WeightKg(),
		Category:        p.Category(),
		Priority:        int(p.Priority()),
		PaymentMethod:   int(p.Payment().Method()),
		CodAmountCents:  p.Payment().CODAmount().Cents(),
		AmountCents:     p.Amount().Cents(),
		AgentID:         agentID,
		Status:          int(p.Status()),
		CreatedAt:       p.CreatedAt(),
		Version:         p.Version(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including status and agent assignment using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingNumber, err := kernel.NewTrackingNumber(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	payment, err := paymentFromDTO(dto)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		trackingNumber,
		dto.Sender,
		dto.Recipient,
		dto.PickupAddress,
		dto.DeliveryAddress,
		dto.WeightKg,
		dto.Category,
		parcel.Priority(dto.Priority),
		payment,
		amount,
		parcel.Status(dto.Status),
		agentID,
		dto.CreatedAt,
		dto.Version,
	)
}

func paymentFromDTO(dto ParcelDTO) (parcel.Payment, error) {
	method := parcel.PaymentMethod(dto.PaymentMethod)
	if err := method.Validate(); err != nil {
		return parcel.Payment{}, err
	}

	if method == parcel.COD {
		codAmount, err := kernel.NewMoney(dto.CodAmountCents)
		if err != nil {
			return parcel.Payment{}, err
		}
		return parcel.NewCODPayment(codAmount), nil
	}

	return parcel.NewPrepaidPayment(), nil
}
