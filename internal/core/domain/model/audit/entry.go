// Package audit provides the append-only audit trail for the parcel system.
// Every mutating operation records an Entry describing who did what to which
// entity, with optional before/after snapshots and request metadata. Entries
// are never updated or deleted; if the audit write fails, the business
// operation that triggered it fails with it.
package audit

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Action labels for the operations the core records.
const (
	ActionParcelIntake       = "parcel.intake"
	ActionParcelTransition   = "parcel.transition"
	ActionOwnershipOverride  = "parcel.ownership_override"
	ActionParcelSoftDelete   = "parcel.soft_delete"
	ActionExceptionCreate    = "exception.create"
	ActionExceptionAssign    = "exception.assign"
	ActionExceptionResolve   = "exception.resolve"
	ActionExceptionCancel    = "exception.cancel"
	ActionDeliveryRequest    = "delivery.request"
	ActionPaymentConfirm     = "delivery.payment_confirm"
	ActionDeliveryDispatch   = "delivery.dispatch"
	ActionDeliveryComplete   = "delivery.complete"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("audit Entry must be created via NewEntry constructor")

// Links carries the optional references tying an entry to the parcels,
// deliveries, and exceptions it touched, for cross-entity timeline queries.
type Links struct {
	ParcelID    *kernel.UUID
	DeliveryID  *kernel.UUID
	ExceptionID *kernel.UUID
}

// RequestMeta carries the request metadata captured with an entry.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Entry is one immutable audit record.
type Entry struct {
	id         kernel.UUID
	actorID    kernel.UUID
	actorRole  string
	action     string
	entityType string
	entityID   kernel.UUID

	// prevData and newData are JSON snapshots of the entity before and after
	// the operation; either may be nil (e.g. no prevData on creation).
	prevData []byte
	newData  []byte

	links Links
	meta  RequestMeta

	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for an operation performed now.
func NewEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	actorRole string,
	action string,
	entityType string,
	entityID kernel.UUID,
	prevData []byte,
	newData []byte,
	links Links,
	meta RequestMeta,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), actorID.Validate(), entityID.Validate()); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if entityType == "" {
		return nil, errs.NewValueIsRequiredError("entityType")
	}

	return &Entry{
		id:            id,
		actorID:       actorID,
		actorRole:     actorRole,
		action:        action,
		entityType:    entityType,
		entityID:      entityID,
		prevData:      prevData,
		newData:       newData,
		links:         links,
		meta:          meta,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an audit entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	actorRole string,
	action string,
	entityType string,
	entityID kernel.UUID,
	prevData []byte,
	newData []byte,
	links Links,
	meta RequestMeta,
	createdAt time.Time,
) (*Entry, error) {
	entry, err := NewEntry(id, actorID, actorRole, action, entityType, entityID, prevData, newData, links, meta)
	if err != nil {
		return nil, err
	}
	entry.createdAt = createdAt
	return entry, nil
}

// Validate ensures the entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// ActorID returns who performed the operation.
func (e *Entry) ActorID() kernel.UUID { return e.actorID }

// ActorRole returns the role the actor held at the time.
func (e *Entry) ActorRole() string { return e.actorRole }

// Action returns the action label, e.g. "parcel.transition".
func (e *Entry) Action() string { return e.action }

// EntityType returns the kind of entity acted on, e.g. "parcel".
func (e *Entry) EntityType() string { return e.entityType }

// EntityID returns the acted-on entity's identifier.
func (e *Entry) EntityID() kernel.UUID { return e.entityID }

// PrevData returns the JSON snapshot before the operation, or nil.
func (e *Entry) PrevData() []byte { return e.prevData }

// NewData returns the JSON snapshot after the operation, or nil.
func (e *Entry) NewData() []byte { return e.newData }

// Links returns the optional linked-entity references.
func (e *Entry) Links() Links { return e.links }

// Meta returns the captured request metadata.
func (e *Entry) Meta() RequestMeta { return e.meta }

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
