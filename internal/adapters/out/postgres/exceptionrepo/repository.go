package exceptionrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormExceptionRepository implements ExceptionRepository using GORM.
type GormExceptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormExceptionRepository creates a new GORM exception repository.
func NewGormExceptionRepository(db *gorm.DB, tracker aggregateTracker) *GormExceptionRepository {
	return &GormExceptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new exception to the database.
func (r *GormExceptionRepository) Add(ctx context.Context, aggregate *exception.Exception) error {
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

// Update saves an existing exception to the database.
// All columns are written so that closed exceptions keep their resolution
// and timestamps exactly as the aggregate holds them.
func (r *GormExceptionRepository) Update(ctx context.Context, aggregate *exception.Exception) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ExceptionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an exception by ID.
func (r *GormExceptionRepository) Get(ctx context.Context, id kernel.UUID) (*exception.Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExceptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("exception", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountOpenByParcel counts the exceptions still blocking the parcel.
func (r *GormExceptionRepository) CountOpenByParcel(ctx context.Context, parcelID kernel.UUID) (int64, error) {
	if err := parcelID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ExceptionDTO{}).
		Where("parcel_id = ? AND status IN ?", parcelID.Bytes(), openStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ExistsOpenByParcelAndKind reports whether the parcel already has an open
// exception of the given kind.
func (r *GormExceptionRepository) ExistsOpenByParcelAndKind(
	ctx context.Context,
	parcelID kernel.UUID,
	kind exception.Kind,
) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ExceptionDTO{}).
		Where("parcel_id = ? AND kind = ? AND status IN ?",
			parcelID.Bytes(), kind.String(), openStatuses()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
