package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel factory method or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrOwnerIsRequiredToUnlock is returned when clearing the exception lock
	// would leave an ownerless parcel unlocked, which the domain forbids.
	ErrOwnerIsRequiredToUnlock = errors.New("exception lock cannot be cleared while the parcel has no owner")
)

// Parcel is the aggregate root for a physical parcel moving through the
// warehouse-to-recipient pipeline.
//
// Parcel maintains these invariants:
//   - Tracking code is never empty
//   - If the owner reference is nil, the exception lock is set
//     (ownership is never guessed without being flagged)
//   - Status transitions follow the Status state machine
//   - Parcels are soft-deleted only; history, exceptions, and deliveries
//     referencing them remain for audit continuity
type Parcel struct {
	id           kernel.UUID
	trackingCode string

	// memberCode is the code the parcel was addressed with; kept even when the
	// owner could not be resolved from it.
	memberCode string

	// ownerID is the resolved owner (nil for an orphan parcel).
	ownerID *kernel.UUID

	registeredBy kernel.UUID
	status       Status

	// hasException mirrors "this parcel has at least one open exception".
	// It is a cached projection maintained inside the same transaction that
	// mutates the parcel's exception collection, never independent state.
	hasException bool

	weight    kernel.Weight
	storedAt  *time.Time
	isDeleted bool

	isConstructed bool
}

// NewParcel creates a parcel at intake, in Arrived status.
// If ownerID is nil the parcel is created as an orphan: the exception lock is
// set immediately so the missing ownership can never go unflagged. The caller
// is responsible for creating the matching exception record atomically.
func NewParcel(
	id kernel.UUID,
	trackingCode string,
	memberCode string,
	ownerID *kernel.UUID,
	registeredBy kernel.UUID,
	weight kernel.Weight,
) (*Parcel, error) {
	p := &Parcel{
		status:        Arrived,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setOwner(ownerID, memberCode),
		p.setRegisteredBy(registeredBy),
		p.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence without applying
// creation-time rules. The stored state is trusted as previously validated.
func RestoreParcel(
	id kernel.UUID,
	trackingCode string,
	memberCode string,
	ownerID *kernel.UUID,
	registeredBy kernel.UUID,
	status Status,
	hasException bool,
	weight kernel.Weight,
	storedAt *time.Time,
	isDeleted bool,
) (*Parcel, error) {
	if err := errors.Join(id.Validate(), registeredBy.Validate(), status.Validate(), weight.Validate()); err != nil {
		return nil, err
	}
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	return &Parcel{
		id:            id,
		trackingCode:  trackingCode,
		memberCode:    memberCode,
		ownerID:       ownerID,
		registeredBy:  registeredBy,
		status:        status,
		hasException:  hasException,
		weight:        weight,
		storedAt:      storedAt,
		isDeleted:     isDeleted,
		isConstructed: true,
	}, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the external tracking code.
func (p *Parcel) TrackingCode() string {
	return p.trackingCode
}

// MemberCode returns the member code the parcel was addressed with.
func (p *Parcel) MemberCode() string {
	return p.memberCode
}

// Owner returns the resolved owner's ID, or nil for an orphan parcel.
func (p *Parcel) Owner() *kernel.UUID {
	return p.ownerID
}

// IsOrphan reports whether the parcel has no resolved owner.
func (p *Parcel) IsOrphan() bool {
	return p.ownerID == nil
}

// RegisteredBy returns the ID of the staff member who registered the parcel.
func (p *Parcel) RegisteredBy() kernel.UUID {
	return p.registeredBy
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// HasException reports whether the parcel is locked by an unresolved exception.
func (p *Parcel) HasException() bool {
	return p.hasException
}

// Weight returns the parcel weight recorded at intake.
func (p *Parcel) Weight() kernel.Weight {
	return p.weight
}

// StoredAt returns when the parcel first reached Stored status, or nil.
func (p *Parcel) StoredAt() *time.Time {
	return p.storedAt
}

// IsDeleted reports whether the parcel has been soft-deleted.
func (p *Parcel) IsDeleted() bool {
	return p.isDeleted
}

// TransitionTo moves the parcel to target if the state machine permits it for
// this caller. The first time the parcel reaches Stored, the stored-at
// timestamp is recorded. Callers own the history append and audit record.
func (p *Parcel) TransitionTo(target Status, adminOverride bool) error {
	if err := p.status.ValidateTransition(target, p.hasException, adminOverride); err != nil {
		return err
	}

	p.status = target
	if target == Stored && p.storedAt == nil {
		now := time.Now().UTC()
		p.storedAt = &now
	}
	return nil
}

// OverrideOwner rebinds the parcel to a new owner and member code.
// Passing a nil ownerID turns the parcel into an orphan, which sets the
// exception lock; it never clears it.
func (p *Parcel) OverrideOwner(ownerID *kernel.UUID, memberCode string) error {
	return p.setOwner(ownerID, memberCode)
}

// MarkException sets the exception lock.
// Called inside the transaction that creates an exception for this parcel.
func (p *Parcel) MarkException() {
	p.hasException = true
}

// ClearException clears the exception lock once no open exceptions remain.
// It refuses to unlock an ownerless parcel: the lock is the flag that keeps
// the unresolved-ownership invariant visible.
func (p *Parcel) ClearException() error {
	if p.ownerID == nil {
		return errs.NewConflictErrorWithCause("parcel has no owner", ErrOwnerIsRequiredToUnlock)
	}
	p.hasException = false
	return nil
}

// SoftDelete marks the parcel as deleted. Related history, exceptions, and
// deliveries are intentionally left in place.
func (p *Parcel) SoftDelete() {
	p.isDeleted = true
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	p.trackingCode = trackingCode
	return nil
}

func (p *Parcel) setOwner(ownerID *kernel.UUID, memberCode string) error {
	if ownerID != nil {
		if err := ownerID.Validate(); err != nil {
			return err
		}
	}

	p.ownerID = ownerID
	p.memberCode = memberCode
	if ownerID == nil {
		p.hasException = true
	}
	return nil
}

func (p *Parcel) setRegisteredBy(registeredBy kernel.UUID) error {
	if err := registeredBy.Validate(); err != nil {
		return err
	}
	p.registeredBy = registeredBy
	return nil
}

func (p *Parcel) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	p.weight = weight
	return nil
}
