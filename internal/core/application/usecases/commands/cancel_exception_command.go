package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCancelExceptionCommandIsNotConstructed = errors.New(
	"CancelExceptionCommand must be created via NewCancelExceptionCommand constructor",
)

// CancelExceptionCommand represents a request to close an exception as an
// erroneous report. Same parcel-unlock re-evaluation as a resolution.
type CancelExceptionCommand struct { //nolint:recvcheck //using for validation
	exceptionID kernel.UUID
	handlerID   kernel.UUID
	actorRole   string
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewCancelExceptionCommand creates a command to cancel an exception.
func NewCancelExceptionCommand(
	exceptionID kernel.UUID,
	handlerID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (CancelExceptionCommand, error) {
	cmd := CancelExceptionCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExceptionID(exceptionID),
		cmd.setHandlerID(handlerID),
	); err != nil {
		return CancelExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelExceptionCommand) Validate() error {
	return c.guard.Validate(ErrCancelExceptionCommandIsNotConstructed)
}

// ExceptionID returns the exception to cancel.
func (c CancelExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}

// HandlerID returns the staff member cancelling the exception.
func (c CancelExceptionCommand) HandlerID() kernel.UUID {
	return c.handlerID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c CancelExceptionCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c CancelExceptionCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *CancelExceptionCommand) setExceptionID(exceptionID kernel.UUID) error {
	if err := exceptionID.Validate(); err != nil {
		return err
	}

	c.exceptionID = exceptionID
	return nil
}

func (c *CancelExceptionCommand) setHandlerID(handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}

	c.handlerID = handlerID
	return nil
}
