// Package historyrepo persists the append-only parcel status timeline.
// History rows are never updated or deleted once written.
package historyrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents one immutable timeline row.
// FromStatus is null only on the intake entry.
type HistoryEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	FromStatus *string   `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "parcel_history"
}

// fromDomain converts a history entry to its database representation.
func fromDomain(entry *parcel.HistoryEntry) HistoryEntryDTO {
	var fromStatus *string
	if status := entry.FromStatus(); status != nil {
		name := status.String()
		fromStatus = &name
	}

	return HistoryEntryDTO{
		ID:         entry.ID().Bytes(),
		ParcelID:   entry.ParcelID().Bytes(),
		FromStatus: fromStatus,
		ToStatus:   entry.ToStatus().String(),
		ActorID:    entry.ActorID().Bytes(),
		Notes:      entry.Notes(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a history entry.
func toDomain(dto HistoryEntryDTO) (*parcel.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var fromStatus *parcel.Status
	if dto.FromStatus != nil {
		status, statusErr := parcel.StatusFromString(*dto.FromStatus)
		if statusErr != nil {
			return nil, statusErr
		}
		fromStatus = &status
	}

	toStatus, err := parcel.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreHistoryEntry(id, parcelID, fromStatus, toStatus, actorID, dto.Notes, dto.CreatedAt)
}
