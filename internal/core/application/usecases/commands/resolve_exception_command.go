package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

// ResolveExceptionCommand represents a request to close an exception with a
// resolution. Closing the last open exception on a parcel releases its lock.
type ResolveExceptionCommand struct { //nolint:recvcheck //using for validation
	exceptionID kernel.UUID
	resolution  string
	handlerID   kernel.UUID
	actorRole   string
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewResolveExceptionCommand creates a command to resolve an exception.
// Validates the exception ID, the handler ID, and the resolution length.
func NewResolveExceptionCommand(
	exceptionID kernel.UUID,
	resolution string,
	handlerID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (ResolveExceptionCommand, error) {
	cmd := ResolveExceptionCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExceptionID(exceptionID),
		cmd.setResolution(resolution),
		cmd.setHandlerID(handlerID),
	); err != nil {
		return ResolveExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

// ExceptionID returns the exception to resolve.
func (c ResolveExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}

// Resolution returns the resolution text.
func (c ResolveExceptionCommand) Resolution() string {
	return c.resolution
}

// HandlerID returns the staff member resolving the exception.
func (c ResolveExceptionCommand) HandlerID() kernel.UUID {
	return c.handlerID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c ResolveExceptionCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c ResolveExceptionCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *ResolveExceptionCommand) setExceptionID(exceptionID kernel.UUID) error {
	if err := exceptionID.Validate(); err != nil {
		return err
	}

	c.exceptionID = exceptionID
	return nil
}

func (c *ResolveExceptionCommand) setResolution(resolution string) error {
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if len(resolution) > exception.MaxResolutionLength {
		return errs.NewValueIsOutOfRangeError("resolution length", len(resolution), 1, exception.MaxResolutionLength)
	}

	c.resolution = resolution
	return nil
}

func (c *ResolveExceptionCommand) setHandlerID(handlerID kernel.UUID) error {
	if err := handlerID.Validate(); err != nil {
		return err
	}

	c.handlerID = handlerID
	return nil
}
