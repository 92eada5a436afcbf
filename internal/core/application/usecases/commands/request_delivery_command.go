package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrRequestDeliveryCommandIsNotConstructed = errors.New(
	"RequestDeliveryCommand must be created via NewRequestDeliveryCommand constructor",
)

// RequestDeliveryCommand represents an owner's request to have a stored
// parcel delivered to an address.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	address, _ := delivery.NewAddress("12 Harbor Way", "Portsmouth", "PO1 2AB")
//	cmd, err := NewRequestDeliveryCommand(deliveryID, parcelID, memberID, address, true, meta)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery request: %w", err)
//	}
//
//	handler := NewRequestDeliveryCommandHandler(uowFactory, feeCalculator, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to request delivery: %w", err)
//	}
type RequestDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	parcelID    kernel.UUID
	recipientID kernel.UUID
	address     delivery.Address
	saveAddress bool
	meta        audit.RequestMeta

	guard guard.ConstructorGuard
}

// NewRequestDeliveryCommand creates a command to request delivery of a parcel.
// Validates the delivery, parcel, and recipient IDs and the address.
func NewRequestDeliveryCommand(
	deliveryID kernel.UUID,
	parcelID kernel.UUID,
	recipientID kernel.UUID,
	address delivery.Address,
	saveAddress bool,
	meta audit.RequestMeta,
) (RequestDeliveryCommand, error) {
	cmd := RequestDeliveryCommand{
		saveAddress: saveAddress,
		meta:        meta,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setParcelID(parcelID),
		cmd.setRecipientID(recipientID),
		cmd.setAddress(address),
	); err != nil {
		return RequestDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRequestDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier assigned to the new delivery.
func (c RequestDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ParcelID returns the parcel to deliver.
func (c RequestDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// RecipientID returns the requesting owner.
func (c RequestDeliveryCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

// Address returns the delivery destination.
func (c RequestDeliveryCommand) Address() delivery.Address {
	return c.address
}

// SaveAddress reports whether the address should become the member's default.
func (c RequestDeliveryCommand) SaveAddress() bool {
	return c.saveAddress
}

// Meta returns the request metadata recorded on the audit entry.
func (c RequestDeliveryCommand) Meta() audit.RequestMeta {
	return c.meta
}

func (c *RequestDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RequestDeliveryCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RequestDeliveryCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	c.recipientID = recipientID
	return nil
}

func (c *RequestDeliveryCommand) setAddress(address delivery.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}
