package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByParcel retrieves the delivery created for the given parcel.
	// A parcel has at most one delivery.
	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*delivery.Delivery, error)
}

// FeeConfigurationRepository reads the active fee bands used to price a
// delivery at request time.
type FeeConfigurationRepository interface {
	// ListActive returns all active fee configurations.
	ListActive(ctx context.Context) ([]*delivery.FeeConfiguration, error)
}
