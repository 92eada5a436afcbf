package delivery

import (
	"fmt"

	"parceltrack/internal/pkg/errs"

	"parceltrack/internal/pkg/guard"
)

// ErrFeeIsNotConstructed is returned when attempting to use an improperly
// initialized Fee. Fees must be created via NewFee.
var ErrFeeIsNotConstructed = errs.NewValueIsRequiredError(
	"fee must be created via NewFee constructor")

// Fee is the immutable fee breakdown snapshotted onto a delivery when it is
// requested. All amounts are in integer cents.
type Fee struct {
	baseFee   int64
	weightFee int64
	guard     guard.ConstructorGuard
}

// NewFee creates a fee breakdown from its base and weight components.
// The total is always base + weight and is never stored independently.
func NewFee(baseFee, weightFee int64) (Fee, error) {
	if baseFee < 0 {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause("baseFee",
			fmt.Errorf("%d is negative", baseFee))
	}
	if weightFee < 0 {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause("weightFee",
			fmt.Errorf("%d is negative", weightFee))
	}

	return Fee{
		baseFee:   baseFee,
		weightFee: weightFee,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Fee was properly constructed using the constructor.
func (f Fee) Validate() error {
	return f.guard.Validate(ErrFeeIsNotConstructed)
}

// BaseFee returns the flat component in cents.
func (f Fee) BaseFee() int64 {
	return f.baseFee
}

// WeightFee returns the per-kilogram component in cents.
func (f Fee) WeightFee() int64 {
	return f.weightFee
}

// TotalFee returns base plus weight component in cents.
func (f Fee) TotalFee() int64 {
	return f.baseFee + f.weightFee
}
