package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
)

// ExceptionRepository defines the persistence contract for exception aggregates.
type ExceptionRepository interface {
	// Add persists a new exception aggregate.
	Add(ctx context.Context, aggregate *exception.Exception) error

	// Update persists changes to an existing exception aggregate.
	Update(ctx context.Context, aggregate *exception.Exception) error

	// Get retrieves an exception by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*exception.Exception, error)

	// CountOpenByParcel counts the parcel's exceptions in open or
	// in-progress status. The parcel's exception lock is a projection of
	// this count and must be recomputed from it in the same transaction
	// that closes an exception.
	CountOpenByParcel(ctx context.Context, parcelID kernel.UUID) (int64, error)

	// ExistsOpenByParcelAndKind reports whether the parcel already has an
	// open or in-progress exception of the given kind.
	ExistsOpenByParcelAndKind(ctx context.Context, parcelID kernel.UUID, kind exception.Kind) (bool, error)
}
