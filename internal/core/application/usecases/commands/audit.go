package commands

import (
	"encoding/json"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/parcel"
)

// Entity type labels recorded on audit entries.
const (
	entityTypeParcel    = "parcel"
	entityTypeException = "exception"
	entityTypeDelivery  = "delivery"
)

// parcelSnapshot is the audit-trail projection of a parcel.
type parcelSnapshot struct {
	ID           string     `json:"id"`
	TrackingCode string     `json:"trackingCode"`
	MemberCode   string     `json:"memberCode,omitempty"`
	OwnerID      *string    `json:"ownerId"`
	Status       string     `json:"status"`
	HasException bool       `json:"hasException"`
	WeightKg     float64    `json:"weightKg"`
	StoredAt     *time.Time `json:"storedAt,omitempty"`
	IsDeleted    bool       `json:"isDeleted,omitempty"`
}

func snapshotParcel(p *parcel.Parcel) ([]byte, error) {
	s := parcelSnapshot{
		ID:           p.ID().String(),
		TrackingCode: p.TrackingCode(),
		MemberCode:   p.MemberCode(),
		Status:       p.Status().String(),
		HasException: p.HasException(),
		WeightKg:     p.Weight().Kilograms(),
		StoredAt:     p.StoredAt(),
		IsDeleted:    p.IsDeleted(),
	}
	if owner := p.Owner(); owner != nil {
		id := owner.String()
		s.OwnerID = &id
	}
	return json.Marshal(s)
}

// exceptionSnapshot is the audit-trail projection of an exception.
type exceptionSnapshot struct {
	ID          string     `json:"id"`
	ParcelID    string     `json:"parcelId"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Resolution  *string    `json:"resolution,omitempty"`
	HandlerID   *string    `json:"handlerId,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

func snapshotException(e *exception.Exception) ([]byte, error) {
	s := exceptionSnapshot{
		ID:          e.ID().String(),
		ParcelID:    e.ParcelID().String(),
		Kind:        e.Kind().String(),
		Status:      e.Status().String(),
		Description: e.Description(),
		Resolution:  e.Resolution(),
		ResolvedAt:  e.ResolvedAt(),
	}
	if handler := e.Handler(); handler != nil {
		id := handler.String()
		s.HandlerID = &id
	}
	return json.Marshal(s)
}

// deliverySnapshot is the audit-trail projection of a delivery.
type deliverySnapshot struct {
	ID            string     `json:"id"`
	ParcelID      string     `json:"parcelId"`
	RecipientID   string     `json:"recipientId"`
	Address       string     `json:"address"`
	PaymentStatus string     `json:"paymentStatus"`
	BaseFee       int64      `json:"baseFee"`
	WeightFee     int64      `json:"weightFee"`
	TotalFee      int64      `json:"totalFee"`
	DispatchedAt  *time.Time `json:"dispatchedAt,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
}

func snapshotDelivery(d *delivery.Delivery) ([]byte, error) {
	return json.Marshal(deliverySnapshot{
		ID:            d.ID().String(),
		ParcelID:      d.ParcelID().String(),
		RecipientID:   d.RecipientID().String(),
		Address:       d.Address().String(),
		PaymentStatus: d.PaymentStatus().String(),
		BaseFee:       d.Fee().BaseFee(),
		WeightFee:     d.Fee().WeightFee(),
		TotalFee:      d.Fee().TotalFee(),
		DispatchedAt:  d.DispatchedAt(),
		DeliveredAt:   d.DeliveredAt(),
	})
}
