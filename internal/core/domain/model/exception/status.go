package exception

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the handling state of an exception.
//
// State transitions:
//
//	Open ──> InProgress ──┬──> Resolved
//	  │                   └──> Cancelled
//	  ├──> Resolved
//	  └──> Cancelled
//
// Resolved and Cancelled are final: a closed exception is immutable.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen is the initial status of a reported exception.
	StatusOpen

	// StatusInProgress indicates a handler has been assigned.
	StatusInProgress

	// StatusResolved indicates the exception was handled. Final.
	StatusResolved

	// StatusCancelled indicates the report was erroneous. Final.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusOpen:       "OPEN",
		StatusInProgress: "IN_PROGRESS",
		StatusResolved:   "RESOLVED",
		StatusCancelled:  "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOpen:       "OPEN",
		StatusInProgress: "IN_PROGRESS",
		StatusResolved:   "RESOLVED",
		StatusCancelled:  "CANCELLED",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("exception status is invalid",
			fmt.Errorf("%d is not a valid exception status", s))
	}
	return nil
}

// String returns the canonical name of the status, e.g. "IN_PROGRESS".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether the status permits no further changes.
func (s Status) IsFinal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// IsOpen reports whether the exception still blocks its parcel.
// Open and in-progress exceptions both count toward the parcel's lock.
func (s Status) IsOpen() bool {
	return s == StatusOpen || s == StatusInProgress
}

// StatusFromString parses a canonical status name into a Status.
// Returns an error for unknown names, including "UNKNOWN" itself.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("exception status is invalid",
		fmt.Errorf("%q is not a valid exception status name", name))
}
