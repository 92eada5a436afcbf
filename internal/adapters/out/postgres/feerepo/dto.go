// Package feerepo provides read access to the delivery fee configuration
// table. Configurations are administered out of band; the application only
// ever reads the active set.
package feerepo

import (
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FeeConfigurationDTO represents one weight-band pricing row.
// Fees are integer cents.
type FeeConfigurationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MinWeightKg float64
	MaxWeightKg *float64
	BaseFee     int64
	PerKgRate   int64
	IsActive    bool `gorm:"index"`
}

// TableName specifies the database table name for fee configurations.
func (FeeConfigurationDTO) TableName() string {
	return "fee_configurations"
}

// toDomain converts a database DTO to a fee configuration.
func toDomain(dto FeeConfigurationDTO) (*delivery.FeeConfiguration, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return delivery.NewFeeConfiguration(
		id,
		dto.MinWeightKg,
		dto.MaxWeightKg,
		dto.BaseFee,
		dto.PerKgRate,
		dto.IsActive,
	)
}

// fromDomain converts a fee configuration to its database representation.
func fromDomain(config *delivery.FeeConfiguration) FeeConfigurationDTO {
	return FeeConfigurationDTO{
		ID:          config.ID().Bytes(),
		MinWeightKg: config.MinWeightKg(),
		MaxWeightKg: config.MaxWeightKg(),
		BaseFee:     config.BaseFee(),
		PerKgRate:   config.PerKgRate(),
		IsActive:    config.IsActive(),
	}
}
