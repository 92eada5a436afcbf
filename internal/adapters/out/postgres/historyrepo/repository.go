package historyrepo

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
// The repository exposes no update or delete operations.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append writes one timeline entry.
func (r *GormHistoryRepository) Append(ctx context.Context, entry *parcel.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByParcel returns the parcel's timeline oldest first.
func (r *GormHistoryRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*parcel.HistoryEntry, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*parcel.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
