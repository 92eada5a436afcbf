package kernel

import (
	"fmt"
	"math"

	"parceltrack/internal/pkg/errs"

	"parceltrack/internal/pkg/guard"
)

const (
	// WeightMinKg is the minimum accepted parcel weight in kilograms.
	WeightMinKg = 0.01
	// WeightMaxKg is the maximum accepted parcel weight in kilograms.
	WeightMaxKg = 50.0
)

// ErrWeightIsNotConstructed is returned when attempting to use an improperly initialized Weight.
// Weights must be created using the NewWeight constructor to ensure validity.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight constructor")

// Weight represents a parcel weight in kilograms, validated against the
// accepted intake range [WeightMinKg, WeightMaxKg]. Weight is an immutable
// value object; the zero value is invalid and will fail validation.
//
// Example:
//
//	w, err := kernel.NewWeight(3.5)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(w.CeilKilograms()) // Output: 4
type Weight struct { //nolint:recvcheck //using for validation
	kilograms float64
	guard     guard.ConstructorGuard
}

// NewWeight creates a Weight from a kilogram value.
// Returns a ValueIsOutOfRangeError if the value falls outside
// [WeightMinKg, WeightMaxKg].
func NewWeight(kilograms float64) (Weight, error) {
	if kilograms < WeightMinKg || kilograms > WeightMaxKg {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", kilograms, WeightMinKg, WeightMaxKg)
	}

	return Weight{
		kilograms: kilograms,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Weight was properly constructed using the constructor.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

// Kilograms returns the weight in kilograms.
func (w Weight) Kilograms() float64 {
	return w.kilograms
}

// CeilKilograms returns the weight rounded up to the next whole kilogram.
// Delivery fees are billed per started kilogram.
func (w Weight) CeilKilograms() int64 {
	return int64(math.Ceil(w.kilograms))
}

// IsEqual compares two weights by their kilogram value.
func (w Weight) IsEqual(other Weight) bool {
	return w.kilograms == other.kilograms
}

// String returns the weight formatted with two decimal places, e.g. "3.50kg".
func (w Weight) String() string {
	return fmt.Sprintf("%.2fkg", w.kilograms)
}
