package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIdempotencyStore implements IdempotencyStore using GORM.
type GormIdempotencyStore struct {
	db *gorm.DB
}

// NewGormIdempotencyStore creates a new GORM idempotency store.
func NewGormIdempotencyStore(db *gorm.DB) *GormIdempotencyStore {
	return &GormIdempotencyStore{db: db}
}

// Get retrieves a cached record by key, endpoint and method.
// An expired record is deleted on the spot and reads as absent: the slot
// must be free for the retried request to cache its fresh response, since
// key, endpoint and method form the primary key.
func (s *GormIdempotencyStore) Get(ctx context.Context, key, endpoint, method string) (*ports.IdempotencyRecord, error) {
	now := time.Now().UTC()

	var dto RecordDTO
	err := s.db.WithContext(ctx).
		First(&dto, "key = ? AND endpoint = ? AND method = ?", key, endpoint, method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency record", key)
		}
		return nil, err
	}

	if !dto.ExpiresAt.After(now) {
		// The expiry guard keeps a concurrently refreshed record alive.
		err = s.db.WithContext(ctx).
			Where("key = ? AND endpoint = ? AND method = ? AND expires_at <= ?",
				key, endpoint, method, now).
			Delete(&RecordDTO{}).Error
		if err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("idempotency record", key)
	}

	record, err := toPort(dto)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Save persists a cached response. A concurrent save of the same
// key/endpoint/method surfaces as a conflict error via the primary key.
func (s *GormIdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) error {
	dto := fromPort(record)
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("idempotency record", err)
		}
		return err
	}

	return nil
}

// DeleteExpired removes all records whose expiry has passed and returns the
// number of deleted rows.
func (s *GormIdempotencyStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&RecordDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
