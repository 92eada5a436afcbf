package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Soft-deleted parcels are invisible through Get: callers receive the same
// not-found error whether a parcel never existed or was deleted.
type ParcelRepository interface {
	// Add persists a new parcel aggregate.
	// Fails with a conflict when the tracking code is already registered.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its unique identifier, excluding
	// soft-deleted parcels.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// ExistsByTrackingCode reports whether any parcel (including
	// soft-deleted ones) carries the tracking code.
	ExistsByTrackingCode(ctx context.Context, trackingCode string) (bool, error)
}

// HistoryRepository defines the persistence contract for the append-only
// transition ledger. Entries are never updated or deleted.
type HistoryRepository interface {
	// Append persists one transition record.
	Append(ctx context.Context, entry *parcel.HistoryEntry) error

	// ListByParcel retrieves a parcel's full transition ledger oldest-first,
	// including entries of soft-deleted parcels.
	ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*parcel.HistoryEntry, error)
}
