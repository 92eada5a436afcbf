package delivery

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// PaymentStatus represents the payment state of a delivery.
// The core never processes payments itself; it records a payment-confirmed
// fact supplied by an external actor.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──> Refunded
//	          └──> Failed ──> Confirmed (retry)
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial status of a created delivery.
	PaymentPending

	// PaymentConfirmed indicates payment was confirmed by a staff member.
	PaymentConfirmed

	// PaymentFailed indicates a payment attempt failed; confirmation may be retried.
	PaymentFailed

	// PaymentRefunded indicates the fee was returned; no further confirmation is accepted.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "UNKNOWN",
		PaymentPending:   "PENDING",
		PaymentConfirmed: "CONFIRMED",
		PaymentFailed:    "FAILED",
		PaymentRefunded:  "REFUNDED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "PENDING",
		PaymentConfirmed: "CONFIRMED",
		PaymentFailed:    "FAILED",
		PaymentRefunded:  "REFUNDED",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the canonical name of the payment status, e.g. "CONFIRMED".
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentStatusFromString parses a canonical payment status name.
// Returns an error for unknown names, including "UNKNOWN" itself.
func PaymentStatusFromString(name string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status name", name))
}
