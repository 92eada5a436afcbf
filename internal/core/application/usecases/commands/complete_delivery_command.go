package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a courier confirmation that a parcel
// reached its recipient. Moves the parcel to its terminal state.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	actorRole  string
	meta       audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActorID(actorID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to complete.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns who confirmed the hand-over.
func (c CompleteDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c CompleteDeliveryCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c CompleteDeliveryCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *CompleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CompleteDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
