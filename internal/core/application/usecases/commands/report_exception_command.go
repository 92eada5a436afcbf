package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrReportExceptionCommandIsNotConstructed = errors.New(
	"ReportExceptionCommand must be created via NewReportExceptionCommand constructor",
)

// ReportExceptionCommand represents a staff report of a problem with a parcel.
// Reporting locks the parcel until every open exception on it is closed.
type ReportExceptionCommand struct { //nolint:recvcheck //using for validation
	parcelID    kernel.UUID
	kind        exception.Kind
	description string
	actorID     kernel.UUID
	actorRole   string
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewReportExceptionCommand creates a command to report an exception.
// Validates the parcel ID, the kind, the description, and the actor ID.
func NewReportExceptionCommand(
	parcelID kernel.UUID,
	kind exception.Kind,
	description string,
	actorID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (ReportExceptionCommand, error) {
	cmd := ReportExceptionCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setKind(kind),
		cmd.setDescription(description),
		cmd.setActorID(actorID),
	); err != nil {
		return ReportExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportExceptionCommand) Validate() error {
	return c.guard.Validate(ErrReportExceptionCommandIsNotConstructed)
}

// ParcelID returns the parcel the report concerns.
func (c ReportExceptionCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Kind returns the exception classification.
func (c ReportExceptionCommand) Kind() exception.Kind {
	return c.kind
}

// Description returns the report text.
func (c ReportExceptionCommand) Description() string {
	return c.description
}

// ActorID returns who reported the exception.
func (c ReportExceptionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c ReportExceptionCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c ReportExceptionCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *ReportExceptionCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ReportExceptionCommand) setKind(kind exception.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *ReportExceptionCommand) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}

	c.description = description
	return nil
}

func (c *ReportExceptionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
