package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAssignExceptionCommandIsNotConstructed = errors.New(
	"AssignExceptionCommand must be created via NewAssignExceptionCommand constructor",
)

// AssignExceptionCommand represents a request to put an exception into a
// handler's hands. Reassignment of an in-progress exception is allowed.
type AssignExceptionCommand struct { //nolint:recvcheck //using for validation
	exceptionID kernel.UUID
	handlerID   kernel.UUID
	actorRole   string
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewAssignExceptionCommand creates a command to assign an exception handler.
func NewAssignExceptionCommand(
	exceptionID kernel.UUID,
	handlerID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (AssignExceptionCommand, error) {
	cmd := AssignExceptionCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExceptionID(exceptionID),
		cmd.setHandlerID(handlerID),
	); err != nil {
		return AssignExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignExceptionCommand) Validate() error {
	return c.guard.Validate(ErrAssignExceptionCommandIsNotConstructed)
}

// ExceptionID returns the exception to assign.
func (c AssignExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}

// HandlerID returns the staff member taking over the exception.
func (c AssignExceptionCommand) HandlerID() kernel.UUID {
	return c.handlerID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c AssignExceptionCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c AssignExceptionCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *AssignExceptionCommand) setExceptionID(exceptionID kernel.UUID) error {
	if err := exceptionID.Validate(); err != nil {
		return err
	}

	c.exceptionID = exceptionID
	return nil
}

func (c *AssignExceptionCommand) setHandlerID(handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}

	c.handlerID = handlerID
	return nil
}
