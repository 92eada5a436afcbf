// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetParcelHistoryQueryIsNotConstructed = errors.New(
	"GetParcelHistoryQuery must be created via NewGetParcelHistoryQuery constructor",
)

// GetParcelHistoryQuery retrieves the full state-transition timeline of a
// parcel, oldest entry first, starting with the intake entry whose from-state
// is empty.
//
// Example:
//
//	query, err := NewGetParcelHistoryQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetParcelHistoryQueryHandler(db)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load history: %w", err)
//	}
type GetParcelHistoryQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelHistoryQuery creates a query for a parcel's history timeline.
func NewGetParcelHistoryQuery(parcelID kernel.UUID) (GetParcelHistoryQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelHistoryQuery{}, err
	}

	return GetParcelHistoryQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelHistoryQueryIsNotConstructed)
}

// ParcelID returns the parcel whose timeline is requested.
func (q GetParcelHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// GetParcelHistoryQueryResponse is one timeline row in the read model.
// FromStatus is empty for the intake entry.
type GetParcelHistoryQueryResponse struct {
	ID         kernel.UUID
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	Notes      string
	CreatedAt  time.Time
}
