// Package idempotencyrepo persists cached responses for idempotent request
// replay. Records are keyed by (key, endpoint, method) so the same client key
// used against a different operation is a distinct record.
package idempotencyrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/google/uuid"
)

// RecordDTO represents one cached response row. The composite primary key
// doubles as the uniqueness guarantee under concurrent saves.
type RecordDTO struct {
	Key          string     `gorm:"type:varchar(64);primaryKey"`
	Endpoint     string     `gorm:"type:varchar(255);primaryKey"`
	Method       string     `gorm:"type:varchar(16);primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid"`
	StatusCode   int
	ResponseBody []byte    `gorm:"type:bytea"`
	ExpiresAt    time.Time `gorm:"index"`
}

// TableName specifies the database table name for idempotency records.
func (RecordDTO) TableName() string {
	return "idempotency_records"
}

// fromPort converts a port record to its database representation.
func fromPort(record ports.IdempotencyRecord) RecordDTO {
	var userID *uuid.UUID
	if id := record.UserID; id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return RecordDTO{
		Key:          record.Key,
		Endpoint:     record.Endpoint,
		Method:       record.Method,
		UserID:       userID,
		StatusCode:   record.StatusCode,
		ResponseBody: record.ResponseBody,
		ExpiresAt:    record.ExpiresAt,
	}
}

// toPort converts a database DTO to a port record.
func toPort(dto RecordDTO) (ports.IdempotencyRecord, error) {
	var userID *kernel.UUID
	if dto.UserID != nil {
		id, err := kernel.UUIDFromBytes((*dto.UserID)[:])
		if err != nil {
			return ports.IdempotencyRecord{}, err
		}
		userID = &id
	}

	return ports.IdempotencyRecord{
		Key:          dto.Key,
		Endpoint:     dto.Endpoint,
		Method:       dto.Method,
		UserID:       userID,
		StatusCode:   dto.StatusCode,
		ResponseBody: dto.ResponseBody,
		ExpiresAt:    dto.ExpiresAt,
	}, nil
}
