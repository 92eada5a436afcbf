// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. This package implements the repository pattern for the
// parcel aggregate, handling the conversion between domain entities and their
// database representation.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Tracking codes carry a unique index so duplicate registrations fail at the
// database even under concurrent intake.
type ParcelDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode string     `gorm:"type:varchar(64);uniqueIndex"`
	MemberCode   string     `gorm:"type:varchar(32);index"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`
	RegisteredBy uuid.UUID  `gorm:"type:uuid"`
	Status       string     `gorm:"type:varchar(32);index"`
	HasException bool
	WeightKg     float64
	StoredAt     *time.Time
	IsDeleted    bool `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var ownerID *uuid.UUID
	if id := aggregate.Owner(); id != nil {
		raw := id.Bytes()
		ownerID = &raw
	}

	return ParcelDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		MemberCode:   aggregate.MemberCode(),
		OwnerID:      ownerID,
		RegisteredBy: aggregate.RegisteredBy().Bytes(),
		Status:       aggregate.Status().String(),
		HasException: aggregate.HasException(),
		WeightKg:     aggregate.Weight().Kilograms(),
		StoredAt:     aggregate.StoredAt(),
		IsDeleted:    aggregate.IsDeleted(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including ownership and lock state
// using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var ownerID *kernel.UUID
	if dto.OwnerID != nil {
		oID, ownerErr := kernel.UUIDFromBytes((*dto.OwnerID)[:])
		if ownerErr != nil {
			return nil, ownerErr
		}

		ownerID = &oID
	}

	registeredBy, err := kernel.UUIDFromBytes(dto.RegisteredBy[:])
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingCode,
		dto.MemberCode,
		ownerID,
		registeredBy,
		status,
		dto.HasException,
		weight,
		dto.StoredAt,
		dto.IsDeleted,
	)
}
