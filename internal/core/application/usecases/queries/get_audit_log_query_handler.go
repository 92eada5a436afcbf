package queries

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditLogQueryHandler retrieves audit entries from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAuditLogQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditLogQueryHandler creates a handler for audit log queries.
// Requires a GORM database connection for query execution.
func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db}
}

// Handle executes the query and returns one page of matching entries with
// the total match count.
func (h GetAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetAuditLogQuery,
) (GetAuditLogQueryPage, error) {
	if err := query.Validate(); err != nil {
		return GetAuditLogQueryPage{}, err
	}

	filter := query.Filter()
	where, args := buildAuditWhere(filter)

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM audit_entries"+where, args...).
		Scan(&total).Error
	if err != nil {
		return GetAuditLogQueryPage{}, err
	}

	order := "DESC"
	if filter.OldestFirst {
		order = "ASC"
	}
	pagedArgs := append(args, filter.PageSize, filter.Offset())

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			actor_id,
			actor_role,
			action,
			entity_type,
			entity_id,
			prev_data,
			new_data,
			parcel_id,
			created_at
		FROM audit_entries%s
		ORDER BY created_at %s, id %s
		LIMIT ? OFFSET ?
	`, where, order, order), pagedArgs...).Rows()
	if err != nil {
		return GetAuditLogQueryPage{}, err
	}
	defer rows.Close()

	entries := make([]GetAuditLogQueryResponse, 0, filter.PageSize)
	for rows.Next() {
		var entry GetAuditLogQueryResponse
		var id, actorID, entityID uuid.UUID
		var parcelID *uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id, &actorID, &entry.ActorRole, &entry.Action, &entry.EntityType,
			&entityID, &entry.PrevData, &entry.NewData, &parcelID, &createdAt,
		)
		if err != nil {
			return GetAuditLogQueryPage{}, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetAuditLogQueryPage{}, err
		}
		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return GetAuditLogQueryPage{}, err
		}
		if entry.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return GetAuditLogQueryPage{}, err
		}
		if parcelID != nil {
			linked, idErr := kernel.UUIDFromBytes(parcelID[:])
			if idErr != nil {
				return GetAuditLogQueryPage{}, idErr
			}
			entry.ParcelID = &linked
		}
		entry.CreatedAt = createdAt

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return GetAuditLogQueryPage{}, err
	}

	return GetAuditLogQueryPage{Entries: entries, Total: total}, nil
}

// buildAuditWhere assembles the WHERE clause for the filter's set fields.
func buildAuditWhere(filter audit.Filter) (string, []any) {
	clauses := make([]string, 0, 7)
	args := make([]any, 0, 7)

	if filter.ActorID != nil {
		clauses = append(clauses, "actor_id = ?")
		args = append(args, filter.ActorID.String())
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		clauses = append(clauses, "entity_type = ?")
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != nil {
		clauses = append(clauses, "entity_id = ?")
		args = append(args, filter.EntityID.String())
	}
	if filter.ParcelID != nil {
		clauses = append(clauses, "parcel_id = ?")
		args = append(args, filter.ParcelID.String())
	}
	if filter.From != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, *filter.To)
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}
