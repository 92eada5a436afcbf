package audit

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

const (
	// DefaultPageSize is used when a filter does not set a page size.
	DefaultPageSize = 50
	// MaxPageSize caps a single page of audit results.
	MaxPageSize = 500
)

// Filter narrows an audit log read. Zero-valued fields are ignored.
// Results are always paginated; ordering is newest-first unless OldestFirst
// is set (used when serving a per-entity timeline).
type Filter struct {
	ActorID    *kernel.UUID
	Action     string
	EntityType string
	EntityID   *kernel.UUID
	ParcelID   *kernel.UUID
	From       *time.Time
	To         *time.Time

	OldestFirst bool
	Page        int
	PageSize    int
}

// Normalize validates the filter and fills pagination defaults.
func (f Filter) Normalize() (Filter, error) {
	if f.Page < 0 {
		return Filter{}, errs.NewValueIsInvalidError("page")
	}
	if f.PageSize < 0 || f.PageSize > MaxPageSize {
		return Filter{}, errs.NewValueIsOutOfRangeError("pageSize", f.PageSize, 0, MaxPageSize)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, errs.NewValueIsInvalidError("time range")
	}

	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
	return f, nil
}

// Offset returns the row offset for the filter's page.
func (f Filter) Offset() int {
	return f.Page * f.PageSize
}
