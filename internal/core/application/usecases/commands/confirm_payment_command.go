package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a staff confirmation that the delivery fee
// was paid. Confirming twice is a conflict; a failed payment may be retried.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	confirmedBy kernel.UUID
	actorRole   string
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm a delivery payment.
func NewConfirmPaymentCommand(
	deliveryID kernel.UUID,
	confirmedBy kernel.UUID,
	actorRole string,
	meta audit.RequestMeta,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		actorRole: actorRole,
		meta:      meta,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setConfirmedBy(confirmedBy),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// DeliveryID returns the delivery whose payment is confirmed.
func (c ConfirmPaymentCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ConfirmedBy returns the staff member confirming the payment.
func (c ConfirmPaymentCommand) ConfirmedBy() kernel.UUID {
	return c.confirmedBy
}

// ActorRole returns the actor's role recorded on the audit entry.
func (c ConfirmPaymentCommand) ActorRole() string {
	return c.actorRole
}

// Meta returns the request metadata recorded on the audit entry.
func (c ConfirmPaymentCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *ConfirmPaymentCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ConfirmPaymentCommand) setConfirmedBy(confirmedBy kernel.UUID) error {
	if err := confirmedBy.Validate(); err != nil {
		return err
	}

	c.confirmedBy = confirmedBy
	return nil
}
