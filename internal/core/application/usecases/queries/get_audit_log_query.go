package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetAuditLogQueryIsNotConstructed = errors.New(
	"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
)

// GetAuditLogQuery retrieves a filtered, paginated slice of the audit trail,
// newest entry first by default.
type GetAuditLogQuery struct {
	filter audit.Filter

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates an audit log query from a filter.
// The filter is normalized: page defaults applied, page size capped.
func NewGetAuditLogQuery(filter audit.Filter) (GetAuditLogQuery, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return GetAuditLogQuery{}, err
	}

	return GetAuditLogQuery{
		filter: normalized,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// Filter returns the normalized filter.
func (q GetAuditLogQuery) Filter() audit.Filter {
	return q.filter
}

// GetAuditLogQueryResponse is one audit entry in the read model.
// PrevData and NewData carry the raw JSON snapshots.
type GetAuditLogQueryResponse struct {
	ID         kernel.UUID
	ActorID    kernel.UUID
	ActorRole  string
	Action     string
	EntityType string
	EntityID   kernel.UUID
	PrevData   []byte
	NewData    []byte
	ParcelID   *kernel.UUID
	CreatedAt  time.Time
}

// GetAuditLogQueryPage is a page of audit entries plus the total match count
// for pagination controls.
type GetAuditLogQueryPage struct {
	Entries []GetAuditLogQueryResponse
	Total   int64
}
