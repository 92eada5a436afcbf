package auditrepo

import (
	"context"

	"parceltrack/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
// The repository exposes no update or delete operations.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes one audit entry.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// List returns one page of entries matching the filter together with the
// total match count. Entries come newest first unless the filter asks for
// the oldest.
func (r *GormAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countScope := r.applyFilter(r.db.WithContext(ctx).Model(&EntryDTO{}), filter)
	if err = countScope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if filter.OldestFirst {
		order = "created_at ASC, id ASC"
	}

	var dtos []EntryDTO
	err = r.applyFilter(r.db.WithContext(ctx).Model(&EntryDTO{}), filter).
		Order(order).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, 0, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (r *GormAuditRepository) applyFilter(scope *gorm.DB, filter audit.Filter) *gorm.DB {
	if filter.ActorID != nil {
		scope = scope.Where("actor_id = ?", filter.ActorID.Bytes())
	}
	if filter.Action != "" {
		scope = scope.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		scope = scope.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		scope = scope.Where("entity_id = ?", filter.EntityID.Bytes())
	}
	if filter.ParcelID != nil {
		scope = scope.Where("parcel_id = ?", filter.ParcelID.Bytes())
	}
	if filter.From != nil {
		scope = scope.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		scope = scope.Where("created_at <= ?", *filter.To)
	}
	return scope
}
