package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// Notification is an outbound message for a parcel owner.
type Notification struct {
	RecipientID kernel.UUID
	Title       string
	Message     string
	ParcelID    *kernel.UUID
	DeliveryID  *kernel.UUID
}

// Notifier delivers notifications to members. Calls happen after the
// business transaction commits; a failed notification never rolls back
// the state change that triggered it.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
