// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. A parcel can have at most one delivery, enforced
// with a unique index on the parcel reference.
package deliveryrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting deliveries.
// The fee breakdown is stored as its two components in integer cents; the
// total is always derived, never stored.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID           uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	RecipientID        uuid.UUID  `gorm:"type:uuid;index"`
	Address            AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	WeightKg           float64
	BaseFee            int64
	WeightFee          int64
	PaymentStatus      string     `gorm:"type:varchar(32);index"`
	PaymentConfirmedBy *uuid.UUID `gorm:"type:uuid"`
	PaymentConfirmedAt *time.Time
	DispatchedAt       *time.Time
	DeliveredAt        *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO represents the embedded destination address within the
// deliveries table.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(32)"`
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var confirmedBy *uuid.UUID
	if id := aggregate.PaymentConfirmedBy(); id != nil {
		raw := id.Bytes()
		confirmedBy = &raw
	}

	return DeliveryDTO{
		ID:          aggregate.ID().Bytes(),
		ParcelID:    aggregate.ParcelID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		Address: AddressDTO{
			Street:     aggregate.Address().Street(),
			City:       aggregate.Address().City(),
			PostalCode: aggregate.Address().PostalCode(),
		},
		WeightKg:           aggregate.Weight().Kilograms(),
		BaseFee:            aggregate.Fee().BaseFee(),
		WeightFee:          aggregate.Fee().WeightFee(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		PaymentConfirmedBy: confirmedBy,
		PaymentConfirmedAt: aggregate.PaymentConfirmedAt(),
		DispatchedAt:       aggregate.DispatchedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var confirmedBy *kernel.UUID
	if dto.PaymentConfirmedBy != nil {
		cID, confirmErr := kernel.UUIDFromBytes((*dto.PaymentConfirmedBy)[:])
		if confirmErr != nil {
			return nil, confirmErr
		}
		confirmedBy = &cID
	}

	address, err := delivery.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.PostalCode)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return nil, err
	}

	fee, err := delivery.NewFee(dto.BaseFee, dto.WeightFee)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := delivery.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		parcelID,
		recipientID,
		address,
		weight,
		fee,
		paymentStatus,
		confirmedBy,
		dto.PaymentConfirmedAt,
		dto.DispatchedAt,
		dto.DeliveredAt,
	)
}
