package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry records one lifecycle transition of a parcel. Entries are
// append-only and together form the authoritative transition ledger for the
// parcel, independent of the audit log. They are never mutated or deleted,
// even when the parcel is soft-deleted.
type HistoryEntry struct {
	id       kernel.UUID
	parcelID kernel.UUID

	// fromStatus is nil for the first entry written at intake.
	fromStatus *Status
	toStatus   Status

	actorID   kernel.UUID
	notes     string
	createdAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates a history entry for a transition performed now.
// fromStatus is nil for the intake entry; every later entry carries the
// status the parcel left.
func NewHistoryEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	actorID kernel.UUID,
	notes string,
) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), toStatus.Validate(), actorID.Validate()); err != nil {
		return nil, err
	}
	if fromStatus != nil {
		if err := fromStatus.Validate(); err != nil {
			return nil, err
		}
	}

	return &HistoryEntry{
		id:            id,
		parcelID:      parcelID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		actorID:       actorID,
		notes:         notes,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
func RestoreHistoryEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	fromStatus *Status,
	toStatus Status,
	actorID kernel.UUID,
	notes string,
	createdAt time.Time,
) (*HistoryEntry, error) {
	entry, err := NewHistoryEntry(id, parcelID, fromStatus, toStatus, actorID, notes)
	if err != nil {
		return nil, err
	}
	entry.createdAt = createdAt
	return entry, nil
}

// Validate ensures the entry was properly constructed.
func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *HistoryEntry) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the parcel this entry belongs to.
func (e *HistoryEntry) ParcelID() kernel.UUID {
	return e.parcelID
}

// FromStatus returns the status the parcel left, or nil for the intake entry.
func (e *HistoryEntry) FromStatus() *Status {
	return e.fromStatus
}

// ToStatus returns the status the parcel entered.
func (e *HistoryEntry) ToStatus() Status {
	return e.toStatus
}

// ActorID returns who performed the transition.
func (e *HistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}

// Notes returns the optional free-text notes recorded with the transition.
func (e *HistoryEntry) Notes() string {
	return e.notes
}

// CreatedAt returns when the transition was recorded.
func (e *HistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}
