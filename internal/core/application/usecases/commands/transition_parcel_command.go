package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrTransitionParcelCommandIsNotConstructed = errors.New(
	"TransitionParcelCommand must be created via NewTransitionParcelCommand constructor",
)

// TransitionParcelCommand represents a request to move a parcel to a target
// lifecycle state. The admin override flag unlocks the corrective backward
// moves that are closed to regular staff.
type TransitionParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	target        parcel.Status
	actorID       kernel.UUID
	actorRole     string
	adminOverride bool
	notes         string
	meta          audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewTransitionParcelCommand creates a command to transition a parcel.
// Validates the parcel ID, the target status, and the actor ID.
func NewTransitionParcelCommand(
	parcelID kernel.UUID,
	target parcel.Status,
	actorID kernel.UUID,
	actorRole string,
	adminOverride bool,
	notes string,
	meta audit.RequestMeta,
) (TransitionParcelCommand, error) {
	cmd := TransitionParcelCommand{
		actorRole:     actorRole,
		adminOverride: adminOverride,
		notes:         notes,
		meta:          meta,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionParcelCommand) Validate() error {
	return c.guard.Validate(ErrTransitionParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to transition.
func (c TransitionParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the requested target status.
func (c TransitionParcelCommand) Target() parcel.Status {
	return c.target
}

// ActorID returns who requested the transition.
func (c TransitionParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c TransitionParcelCommand) ActorRole() string {
	return c.actorRole
}

// AdminOverride reports whether the caller invoked admin override capability.
func (c TransitionParcelCommand) AdminOverride() bool {
	return c.adminOverride
}

// Notes returns the free-form notes recorded on the history entry.
func (c TransitionParcelCommand) Notes() string {
	return c.notes
}

// Meta returns the request metadata recorded on the audit entry.
func (c TransitionParcelCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *TransitionParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *TransitionParcelCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
