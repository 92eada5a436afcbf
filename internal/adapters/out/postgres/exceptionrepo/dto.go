// Package exceptionrepo provides data transfer objects and mapping functions
// for exception persistence.
package exceptionrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ExceptionDTO represents the database structure for persisting exceptions.
// Parcel and status are indexed together because the lock projection counts
// open exceptions per parcel on every resolve and cancel.
type ExceptionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID  `gorm:"type:uuid;index:idx_exceptions_parcel_status"`
	Kind        string     `gorm:"type:varchar(32)"`
	Status      string     `gorm:"type:varchar(32);index:idx_exceptions_parcel_status"`
	Description string     `gorm:"type:text"`
	Resolution  *string    `gorm:"type:text"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid"`
	HandlerID   *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt  *time.Time
}

// TableName specifies the database table name for exception entities.
func (ExceptionDTO) TableName() string {
	return "exceptions"
}

// openStatuses returns the status names that still block a parcel.
func openStatuses() []string {
	return []string{exception.StatusOpen.String(), exception.StatusInProgress.String()}
}

// fromDomain converts an exception domain aggregate to its database representation.
func fromDomain(aggregate *exception.Exception) ExceptionDTO {
	var handlerID *uuid.UUID
	if id := aggregate.Handler(); id != nil {
		raw := id.Bytes()
		handlerID = &raw
	}

	return ExceptionDTO{
		ID:          aggregate.ID().Bytes(),
		ParcelID:    aggregate.ParcelID().Bytes(),
		Kind:        aggregate.Kind().String(),
		Status:      aggregate.Status().String(),
		Description: aggregate.Description(),
		Resolution:  aggregate.Resolution(),
		CreatedBy:   aggregate.CreatedBy().Bytes(),
		HandlerID:   handlerID,
		ResolvedAt:  aggregate.ResolvedAt(),
	}
}

// toDomain converts a database DTO to an exception domain aggregate.
func toDomain(dto ExceptionDTO) (*exception.Exception, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	var handlerID *kernel.UUID
	if dto.HandlerID != nil {
		hID, handlerErr := kernel.UUIDFromBytes((*dto.HandlerID)[:])
		if handlerErr != nil {
			return nil, handlerErr
		}
		handlerID = &hID
	}

	kind, err := exception.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := exception.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return exception.RestoreException(
		id,
		parcelID,
		kind,
		status,
		dto.Description,
		dto.Resolution,
		createdBy,
		handlerID,
		dto.ResolvedAt,
	)
}
