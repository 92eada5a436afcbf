package exception

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// MaxResolutionLength is the longest accepted resolution text.
const MaxResolutionLength = 2000

var (
	// ErrExceptionIsNotConstructed is returned when an Exception instance was
	// not created through NewException or RestoreException.
	ErrExceptionIsNotConstructed = errors.New("Exception must be created via NewException constructor")
)

// Exception is the aggregate root for a reported problem on a parcel.
// While at least one exception on a parcel is open or in progress, the parcel
// carries an exception lock that blocks lifecycle transitions.
//
// Invariant: a resolved exception always has resolution text, a handler, and a
// resolved-at timestamp. Once resolved or cancelled, an exception is immutable.
type Exception struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	kind        Kind
	status      Status
	description string
	resolution  *string
	createdBy   kernel.UUID
	handlerID   *kernel.UUID
	resolvedAt  *time.Time

	isConstructed bool
}

// NewException creates an open exception for a parcel.
// The caller must set the parcel's exception lock in the same transaction.
func NewException(
	id kernel.UUID,
	parcelID kernel.UUID,
	kind Kind,
	description string,
	createdBy kernel.UUID,
) (*Exception, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), kind.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}

	return &Exception{
		id:            id,
		parcelID:      parcelID,
		kind:          kind,
		status:        StatusOpen,
		description:   description,
		createdBy:     createdBy,
		isConstructed: true,
	}, nil
}

// RestoreException reconstructs an exception from persistence.
func RestoreException(
	id kernel.UUID,
	parcelID kernel.UUID,
	kind Kind,
	status Status,
	description string,
	resolution *string,
	createdBy kernel.UUID,
	handlerID *kernel.UUID,
	resolvedAt *time.Time,
) (*Exception, error) {
	if err := errors.Join(
		id.Validate(), parcelID.Validate(), kind.Validate(), status.Validate(), createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	return &Exception{
		id:            id,
		parcelID:      parcelID,
		kind:          kind,
		status:        status,
		description:   description,
		resolution:    resolution,
		createdBy:     createdBy,
		handlerID:     handlerID,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Exception instance was properly constructed.
func (e *Exception) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrExceptionIsNotConstructed
	}
	return nil
}

// ID returns the exception's unique identifier.
func (e *Exception) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the parcel this exception belongs to.
func (e *Exception) ParcelID() kernel.UUID {
	return e.parcelID
}

// Kind returns the exception classification.
func (e *Exception) Kind() Kind {
	return e.kind
}

// Status returns the current handling status.
func (e *Exception) Status() Status {
	return e.status
}

// Description returns the report text.
func (e *Exception) Description() string {
	return e.description
}

// Resolution returns the resolution text, or nil while unresolved.
func (e *Exception) Resolution() *string {
	return e.resolution
}

// CreatedBy returns who reported the exception.
func (e *Exception) CreatedBy() kernel.UUID {
	return e.createdBy
}

// Handler returns the assigned handler's ID, or nil if unassigned.
func (e *Exception) Handler() *kernel.UUID {
	return e.handlerID
}

// ResolvedAt returns when the exception was resolved, or nil.
func (e *Exception) ResolvedAt() *time.Time {
	return e.resolvedAt
}

// Assign sets the handler and moves the exception to in-progress.
// Legal from open or in-progress status; reassignment is allowed.
func (e *Exception) Assign(handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}
	if err := e.ensureMutable("assign"); err != nil {
		return err
	}

	e.status = StatusInProgress
	e.handlerID = &handlerID
	return nil
}

// Resolve closes the exception with a resolution text.
// The resolved-fields invariant is established here: resolution, handler,
// and resolved-at are all set together or not at all.
func (e *Exception) Resolve(resolution string, handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if len(resolution) > MaxResolutionLength {
		return errs.NewValueIsOutOfRangeError("resolution length", len(resolution), 1, MaxResolutionLength)
	}
	if err := e.ensureMutable("resolve"); err != nil {
		return err
	}

	now := time.Now().UTC()
	e.status = StatusResolved
	e.resolution = &resolution
	e.handlerID = &handlerID
	e.resolvedAt = &now
	return nil
}

// Cancel closes the exception as an erroneous report.
func (e *Exception) Cancel(handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}
	if err := e.ensureMutable("cancel"); err != nil {
		return err
	}

	e.status = StatusCancelled
	e.handlerID = &handlerID
	return nil
}

func (e *Exception) ensureMutable(action string) error {
	if e.status.IsFinal() {
		return errs.NewConflictErrorWithCause(
			fmt.Sprintf("cannot %s exception in status %s", action, e.status),
			fmt.Errorf("exception %s is already closed", e.id))
	}
	return nil
}
