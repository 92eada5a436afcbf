package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the business-failure taxonomy.
var (
	ErrConflict               = errors.New("operation conflicts with current state")
	ErrForbidden              = errors.New("operation is not permitted")
	ErrTransitionIsNotAllowed = errors.New("transition is not allowed")
)

// ConflictError indicates that an operation cannot proceed because it would
// contradict already-recorded state, such as a duplicate tracking code or an
// already-confirmed payment. No mutation is performed when it is returned.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("conflict: %s (cause: %s)", e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("conflict: %s", e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError indicates that the acting caller is not allowed to perform the
// operation on the target entity: ownership mismatch, missing admin role, or a
// parcel blocked by an unresolved exception. Surfaced distinctly from not-found.
type ForbiddenError struct {
	ParamName string
	Cause     error
}

// NewForbiddenError creates a ForbiddenError without an underlying cause.
func NewForbiddenError(paramName string) *ForbiddenError {
	return &ForbiddenError{ParamName: paramName}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(paramName string, cause error) *ForbiddenError {
	return &ForbiddenError{ParamName: paramName, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("forbidden: %s (cause: %s)", e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("forbidden: %s", e.ParamName))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// TransitionIsNotAllowedError indicates that a lifecycle state transition was
// rejected. Reason names the specific rule that was violated so the failure is
// explainable to the caller.
type TransitionIsNotAllowedError struct {
	From   string
	To     string
	Reason string
}

// NewTransitionIsNotAllowedError creates a TransitionIsNotAllowedError for the
// rejected from->to transition with the violated rule.
func NewTransitionIsNotAllowedError(from, to, reason string) *TransitionIsNotAllowedError {
	return &TransitionIsNotAllowedError{From: from, To: to, Reason: reason}
}

func (e *TransitionIsNotAllowedError) Error() string {
	return sanitize(fmt.Sprintf("transition %s -> %s is not allowed: %s", e.From, e.To, e.Reason))
}

func (e *TransitionIsNotAllowedError) Unwrap() error {
	return ErrTransitionIsNotAllowed
}
