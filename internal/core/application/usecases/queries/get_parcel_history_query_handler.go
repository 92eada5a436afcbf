package queries

import (
	"context"
	"database/sql"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelHistoryQueryHandler retrieves a parcel's transition timeline.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
// Soft-deleted parcels read as not-found, indistinguishable from parcels
// that never existed.
type GetParcelHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelHistoryQueryHandler creates a handler for history timeline queries.
// Requires a GORM database connection for query execution.
func NewGetParcelHistoryQueryHandler(db *gorm.DB) GetParcelHistoryQueryHandler {
	return GetParcelHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the timeline oldest first.
func (h GetParcelHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetParcelHistoryQuery,
) ([]GetParcelHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var visible int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM parcels
		WHERE id = ? AND is_deleted = false
	`, query.ParcelID().String()).Scan(&visible).Error
	if err != nil {
		return nil, err
	}
	if visible == 0 {
		return nil, errs.NewObjectNotFoundError("parcelID", query.ParcelID().String())
	}

	entries := make([]GetParcelHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			actor_id,
			notes,
			created_at
		FROM parcel_history
		WHERE parcel_id = ?
		ORDER BY created_at ASC, id ASC
	`, query.ParcelID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetParcelHistoryQueryResponse
		var id, actorID uuid.UUID
		var fromStatus sql.NullString
		var createdAt time.Time

		err = rows.Scan(&id, &fromStatus, &entry.ToStatus, &actorID, &entry.Notes, &createdAt)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		entryActor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ActorID = entryActor

		if fromStatus.Valid {
			entry.FromStatus = fromStatus.String
		}
		entry.CreatedAt = createdAt

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
