package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrDispatchDeliveryCommandIsNotConstructed = errors.New(
	"DispatchDeliveryCommand must be created via NewDispatchDeliveryCommand constructor",
)

// DispatchDeliveryCommand represents a staff request to hand a paid delivery
// to a courier.
type DispatchDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	actorRole  string
	meta       audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewDispatchDeliveryCommand creates a command to dispatch a delivery.
func NewDispatchDeliveryCommand(
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (DispatchDeliveryCommand, error) {
	cmd := DispatchDeliveryCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActorID(actorID),
	); err != nil {
		return DispatchDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to dispatch.
func (c DispatchDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the staff member dispatching the delivery.
func (c DispatchDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c DispatchDeliveryCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c DispatchDeliveryCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *DispatchDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *DispatchDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
