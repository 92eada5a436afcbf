package feerepo

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GormFeeConfigurationRepository implements FeeConfigurationRepository using GORM.
type GormFeeConfigurationRepository struct {
	db *gorm.DB
}

// NewGormFeeConfigurationRepository creates a new GORM fee configuration repository.
func NewGormFeeConfigurationRepository(db *gorm.DB) *GormFeeConfigurationRepository {
	return &GormFeeConfigurationRepository{db: db}
}

// ListActive returns all active fee configurations ordered by minimum weight.
// An empty result is not an error; the fee calculator falls back to defaults.
func (r *GormFeeConfigurationRepository) ListActive(ctx context.Context) ([]*delivery.FeeConfiguration, error) {
	var dtos []FeeConfigurationDTO
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("min_weight_kg ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	configs := make([]*delivery.FeeConfiguration, 0, len(dtos))
	for _, dto := range dtos {
		config, configErr := toDomain(dto)
		if configErr != nil {
			return nil, configErr
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// Add saves a fee configuration row. Configurations are normally seeded out
// of band; this exists for integration tests and seed tooling.
func (r *GormFeeConfigurationRepository) Add(ctx context.Context, config *delivery.FeeConfiguration) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dto := fromDomain(config)
	return r.db.WithContext(ctx).Create(&dto).Error
}
