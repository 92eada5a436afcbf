package delivery

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrFeeConfigurationIsNotConstructed is returned when a FeeConfiguration was
// not created through NewFeeConfiguration.
var ErrFeeConfigurationIsNotConstructed = errors.New(
	"FeeConfiguration must be created via NewFeeConfiguration constructor")

// FeeConfiguration is a priced weight band maintained by administrators.
// A configuration applies to weights in [minWeight, maxWeight); a nil
// maxWeight means the band is unbounded above. Amounts are integer cents.
type FeeConfiguration struct {
	id          kernel.UUID
	minWeightKg float64
	maxWeightKg *float64
	baseFee     int64
	perKgRate   int64
	isActive    bool

	isConstructed bool
}

// NewFeeConfiguration creates a fee configuration for a weight band.
func NewFeeConfiguration(
	id kernel.UUID,
	minWeightKg float64,
	maxWeightKg *float64,
	baseFee int64,
	perKgRate int64,
	isActive bool,
) (*FeeConfiguration, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if minWeightKg < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("minWeightKg",
			fmt.Errorf("%f is negative", minWeightKg))
	}
	if maxWeightKg != nil && *maxWeightKg <= minWeightKg {
		return nil, errs.NewValueIsInvalidErrorWithCause("maxWeightKg",
			fmt.Errorf("%f is not greater than minWeightKg %f", *maxWeightKg, minWeightKg))
	}
	if baseFee < 0 || perKgRate < 0 {
		return nil, errs.NewValueIsInvalidError("fee amounts must not be negative")
	}

	return &FeeConfiguration{
		id:            id,
		minWeightKg:   minWeightKg,
		maxWeightKg:   maxWeightKg,
		baseFee:       baseFee,
		perKgRate:     perKgRate,
		isActive:      isActive,
		isConstructed: true,
	}, nil
}

// Validate ensures the configuration was properly constructed.
func (c *FeeConfiguration) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrFeeConfigurationIsNotConstructed
	}
	return nil
}

// ID returns the configuration's unique identifier.
func (c *FeeConfiguration) ID() kernel.UUID { return c.id }

// MinWeightKg returns the inclusive lower bound of the band.
func (c *FeeConfiguration) MinWeightKg() float64 { return c.minWeightKg }

// MaxWeightKg returns the exclusive upper bound, or nil when unbounded.
func (c *FeeConfiguration) MaxWeightKg() *float64 { return c.maxWeightKg }

// BaseFee returns the flat fee in cents.
func (c *FeeConfiguration) BaseFee() int64 { return c.baseFee }

// PerKgRate returns the per-started-kilogram rate in cents.
func (c *FeeConfiguration) PerKgRate() int64 { return c.perKgRate }

// IsActive reports whether the band participates in fee matching.
func (c *FeeConfiguration) IsActive() bool { return c.isActive }

// Matches reports whether the band contains the given weight.
// Inactive bands never match.
func (c *FeeConfiguration) Matches(weight kernel.Weight) bool {
	if !c.isActive {
		return false
	}
	kg := weight.Kilograms()
	if kg < c.minWeightKg {
		return false
	}
	if c.maxWeightKg != nil && kg >= *c.maxWeightKg {
		return false
	}
	return true
}
