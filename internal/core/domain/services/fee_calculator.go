package services

import (
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

const (
	// DefaultBaseFee is the flat fee in cents applied when no configured
	// weight band matches the parcel weight.
	DefaultBaseFee int64 = 5000

	// DefaultPerKgRate is the per-started-kilogram rate in cents applied when
	// no configured weight band matches the parcel weight.
	DefaultPerKgRate int64 = 2000
)

// FeeCalculator is a domain service that computes the delivery fee for a
// parcel weight from the administrator-maintained fee configurations.
//
// Business rules:
//   - Only active configurations whose [min, max) band contains the weight
//     are considered; among several matches the one with the highest
//     minWeight wins (the most specific band)
//   - When nothing matches, the hardcoded defaults apply
//   - The weight is rounded up to the next whole kilogram before being
//     multiplied by the per-kg rate
//
// Example:
//
//	calc := services.NewFeeCalculator()
//	fee, err := calc.Calculate(weight, configs)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(fee.TotalFee())
type FeeCalculator struct{}

// NewFeeCalculator creates a new FeeCalculator instance.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Calculate computes the fee breakdown for the given weight.
// configs may be empty or contain inactive or non-matching bands; the
// defaults cover that case.
func (f FeeCalculator) Calculate(
	weight kernel.Weight,
	configs []*delivery.FeeConfiguration,
) (delivery.Fee, error) {
	if err := weight.Validate(); err != nil {
		return delivery.Fee{}, err
	}

	baseFee, perKgRate := DefaultBaseFee, DefaultPerKgRate

	var best *delivery.FeeConfiguration
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return delivery.Fee{}, err
		}
		if !cfg.Matches(weight) {
			continue
		}
		if best == nil || cfg.MinWeightKg() > best.MinWeightKg() {
			best = cfg
		}
	}
	if best != nil {
		baseFee, perKgRate = best.BaseFee(), best.PerKgRate()
	}

	return delivery.NewFee(baseFee, weight.CeilKilograms()*perKgRate)
}
