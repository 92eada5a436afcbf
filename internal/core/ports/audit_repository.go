package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the audit trail.
// Entries are append-only. There is no update or delete.
type AuditRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, entry *audit.Entry) error

	// List returns audit entries matching the filter, newest first unless
	// the filter requests the oldest-first order, paginated.
	List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error)
}
