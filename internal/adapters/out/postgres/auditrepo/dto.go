// Package auditrepo persists the append-only audit trail. Entries are written
// inside the same transaction as the operation they record and are never
// updated or deleted afterwards.
package auditrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents one immutable audit row. Snapshots are stored as jsonb
// so they stay queryable; link columns are nullable because not every
// operation touches a parcel, delivery or exception.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID     uuid.UUID  `gorm:"type:uuid;index"`
	ActorRole   string     `gorm:"type:varchar(32)"`
	Action      string     `gorm:"type:varchar(64);index"`
	EntityType  string     `gorm:"type:varchar(32);index"`
	EntityID    uuid.UUID  `gorm:"type:uuid;index"`
	PrevData    []byte     `gorm:"type:jsonb"`
	NewData     []byte     `gorm:"type:jsonb"`
	ParcelID    *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryID  *uuid.UUID `gorm:"type:uuid"`
	ExceptionID *uuid.UUID `gorm:"type:uuid"`
	IP          string     `gorm:"type:varchar(64)"`
	UserAgent   string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) EntryDTO {
	links := entry.Links()

	return EntryDTO{
		ID:          entry.ID().Bytes(),
		ActorID:     entry.ActorID().Bytes(),
		ActorRole:   entry.ActorRole(),
		Action:      entry.Action(),
		EntityType:  entry.EntityType(),
		EntityID:    entry.EntityID().Bytes(),
		PrevData:    entry.PrevData(),
		NewData:     entry.NewData(),
		ParcelID:    optionalUUID(links.ParcelID),
		DeliveryID:  optionalUUID(links.DeliveryID),
		ExceptionID: optionalUUID(links.ExceptionID),
		IP:          entry.Meta().IP,
		UserAgent:   entry.Meta().UserAgent,
		CreatedAt:   entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to an audit entry.
func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := optionalKernelUUID(dto.ParcelID)
	if err != nil {
		return nil, err
	}

	deliveryID, err := optionalKernelUUID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}

	exceptionID, err := optionalKernelUUID(dto.ExceptionID)
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(
		id,
		actorID,
		dto.ActorRole,
		dto.Action,
		dto.EntityType,
		entityID,
		dto.PrevData,
		dto.NewData,
		audit.Links{ParcelID: parcelID, DeliveryID: deliveryID, ExceptionID: exceptionID},
		audit.RequestMeta{IP: dto.IP, UserAgent: dto.UserAgent},
		dto.CreatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
