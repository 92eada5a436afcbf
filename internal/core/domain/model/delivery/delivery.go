package delivery

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is the aggregate root for the one-to-one delivery record attached
// to a parcel once its owner requests it. It carries the destination address,
// the fee snapshot computed at request time, and the payment and fulfillment
// timestamps.
//
// Invariant: a confirmed payment always has both the confirmer's ID and the
// confirmation timestamp set.
type Delivery struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	recipientID kernel.UUID
	address     Address

	// weight is snapshotted from the parcel at request time so later weight
	// corrections never change an already-quoted fee.
	weight kernel.Weight
	fee    Fee

	paymentStatus      PaymentStatus
	paymentConfirmedBy *kernel.UUID
	paymentConfirmedAt *time.Time

	dispatchedAt *time.Time
	deliveredAt  *time.Time

	isConstructed bool
}

// NewDelivery creates a delivery in payment-pending state.
func NewDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	recipientID kernel.UUID,
	address Address,
	weight kernel.Weight,
	fee Fee,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(), parcelID.Validate(), recipientID.Validate(),
		address.Validate(), weight.Validate(), fee.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		parcelID:      parcelID,
		recipientID:   recipientID,
		address:       address,
		weight:        weight,
		fee:           fee,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	recipientID kernel.UUID,
	address Address,
	weight kernel.Weight,
	fee Fee,
	paymentStatus PaymentStatus,
	paymentConfirmedBy *kernel.UUID,
	paymentConfirmedAt *time.Time,
	dispatchedAt *time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	d, err := NewDelivery(id, parcelID, recipientID, address, weight, fee)
	if err != nil {
		return nil, err
	}
	if err = paymentStatus.Validate(); err != nil {
		return nil, err
	}

	d.paymentStatus = paymentStatus
	d.paymentConfirmedBy = paymentConfirmedBy
	d.paymentConfirmedAt = paymentConfirmedAt
	d.dispatchedAt = dispatchedAt
	d.deliveredAt = deliveredAt
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ParcelID returns the parcel this delivery fulfills.
func (d *Delivery) ParcelID() kernel.UUID {
	return d.parcelID
}

// RecipientID returns the member receiving the parcel.
func (d *Delivery) RecipientID() kernel.UUID {
	return d.recipientID
}

// Address returns the destination address.
func (d *Delivery) Address() Address {
	return d.address
}

// Weight returns the weight snapshot taken at request time.
func (d *Delivery) Weight() kernel.Weight {
	return d.weight
}

// Fee returns the fee breakdown snapshot.
func (d *Delivery) Fee() Fee {
	return d.fee
}

// PaymentStatus returns the current payment state.
func (d *Delivery) PaymentStatus() PaymentStatus {
	return d.paymentStatus
}

// PaymentConfirmedBy returns who confirmed payment, or nil.
func (d *Delivery) PaymentConfirmedBy() *kernel.UUID {
	return d.paymentConfirmedBy
}

// PaymentConfirmedAt returns when payment was confirmed, or nil.
func (d *Delivery) PaymentConfirmedAt() *time.Time {
	return d.paymentConfirmedAt
}

// DispatchedAt returns when the parcel left the warehouse, or nil.
func (d *Delivery) DispatchedAt() *time.Time {
	return d.dispatchedAt
}

// DeliveredAt returns when the parcel reached the recipient, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// ConfirmPayment records the payment-confirmed fact supplied by an external
// actor. Rejected when the payment is already confirmed or refunded; a failed
// attempt may be confirmed on retry.
func (d *Delivery) ConfirmPayment(confirmedBy kernel.UUID) error {
	if err := confirmedBy.Validate(); err != nil {
		return err
	}
	if d.paymentStatus == PaymentConfirmed || d.paymentStatus == PaymentRefunded {
		return errs.NewConflictErrorWithCause("payment cannot be confirmed",
			fmt.Errorf("payment is already %s", d.paymentStatus))
	}

	now := time.Now().UTC()
	d.paymentStatus = PaymentConfirmed
	d.paymentConfirmedBy = &confirmedBy
	d.paymentConfirmedAt = &now
	return nil
}

// Dispatch records the hand-over to a courier. Requires a confirmed payment
// and rejects double dispatch.
func (d *Delivery) Dispatch() error {
	if d.paymentStatus != PaymentConfirmed {
		return errs.NewConflictErrorWithCause("delivery cannot be dispatched",
			fmt.Errorf("payment is %s, not CONFIRMED", d.paymentStatus))
	}
	if d.dispatchedAt != nil {
		return errs.NewConflictError("delivery is already dispatched")
	}

	now := time.Now().UTC()
	d.dispatchedAt = &now
	return nil
}

// Complete records the final hand-over to the recipient.
// Requires a prior dispatch and rejects double completion.
func (d *Delivery) Complete() error {
	if d.dispatchedAt == nil {
		return errs.NewConflictError("delivery has not been dispatched")
	}
	if d.deliveredAt != nil {
		return errs.NewConflictError("delivery is already completed")
	}

	now := time.Now().UTC()
	d.deliveredAt = &now
	return nil
}
