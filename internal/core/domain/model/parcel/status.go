package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a strictly linear state machine: each state permits exactly one
// forward step, with no skipping and no lateral moves. A constrained set of
// backward transitions exists for elevated callers (see adminOverrideTargets).
//
// State transitions:
//
//	Expected ──> Arrived ──> Stored ──> DeliveryRequested ──> OutForDelivery ──> Delivered
//	                           ^                │                    │               │
//	                           └────────────────┴────────────────────┴───────────────┘
//	                                      (admin override only)
//
// Delivered is terminal for non-elevated callers.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Expected marks a parcel that has been announced but not yet received.
	Expected

	// Arrived marks a parcel received at the warehouse intake desk.
	Arrived

	// Stored marks a parcel placed on a storage shelf.
	Stored

	// DeliveryRequested marks a parcel whose owner has requested delivery.
	DeliveryRequested

	// OutForDelivery marks a parcel handed to a courier.
	OutForDelivery

	// Delivered marks a parcel handed over to its recipient. Terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Expected:          "EXPECTED",
		Arrived:           "ARRIVED",
		Stored:            "STORED",
		DeliveryRequested: "DELIVERY_REQUESTED",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Delivered:         "DELIVERED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Expected:          "EXPECTED",
		Arrived:           "ARRIVED",
		Stored:            "STORED",
		DeliveryRequested: "DELIVERY_REQUESTED",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Delivered:         "DELIVERED",
	}
}

// forwardTarget maps each state to its single permitted forward step.
// Delivered is absent: it is terminal.
func forwardTarget() map[Status]Status {
	return map[Status]Status{
		Expected:          Arrived,
		Arrived:           Stored,
		Stored:            DeliveryRequested,
		DeliveryRequested: OutForDelivery,
		OutForDelivery:    Delivered,
	}
}

// adminOverrideTargets maps each state to the set of backward transitions an
// elevated caller may perform. Kept as an explicit table, separate from the
// forward table, so the override policy is data rather than branching.
func adminOverrideTargets() map[Status]map[Status]bool {
	return map[Status]map[Status]bool{
		Delivered:         {Stored: true},
		OutForDelivery:    {Stored: true},
		DeliveryRequested: {Stored: true},
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other unmapped values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name of the status, e.g. "DELIVERY_REQUESTED".
// Returns "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a canonical status name into a Status.
// Returns an error for unknown names, including "UNKNOWN" itself.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", name))
}

// IsTerminal reports whether the status permits no further forward transition.
func (s Status) IsTerminal() bool {
	_, ok := forwardTarget()[s]
	return s.Validate() == nil && !ok
}

// ValidateTransition decides whether a transition from s to target is legal.
// Rules are applied in priority order:
//
//  1. Same-state requests are rejected.
//  2. An exception-locked parcel rejects every transition unless the caller
//     holds admin override.
//  3. A target that is not the single forward step is only accepted when the
//     caller holds admin override and the target is in the override table;
//     any other target is rejected with the expected next state named.
//
// The decision is pure: callers own persistence and history appends.
func (s Status) ValidateTransition(target Status, exceptionLocked bool, adminOverride bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if s == target {
		return errs.NewTransitionIsNotAllowedError(s.String(), target.String(),
			fmt.Sprintf("parcel is already in state %s", s))
	}

	if exceptionLocked && !adminOverride {
		return errs.NewForbiddenError("parcel is locked by an unresolved exception")
	}

	if next, ok := forwardTarget()[s]; ok && next == target {
		return nil
	}

	if adminOverride && adminOverrideTargets()[s][target] {
		return nil
	}

	if next, ok := forwardTarget()[s]; ok {
		return errs.NewTransitionIsNotAllowedError(s.String(), target.String(),
			fmt.Sprintf("expected next state is %s", next))
	}

	return errs.NewTransitionIsNotAllowedError(s.String(), target.String(),
		fmt.Sprintf("%s is a terminal state", s))
}

// NextStates lists every state legally reachable from s for validation and UI
// consumers. Elevated callers additionally see the admin override targets.
func (s Status) NextStates(isAdmin bool) []Status {
	states := make([]Status, 0, 2)
	if next, ok := forwardTarget()[s]; ok {
		states = append(states, next)
	}
	if isAdmin {
		for target := range adminOverrideTargets()[s] {
			states = append(states, target)
		}
	}
	return states
}

// IsSkip reports whether target lies more than one forward step ahead of s.
// Diagnostic helper; the transition itself is rejected by ValidateTransition.
func (s Status) IsSkip(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return target > s && forwardTarget()[s] != target
}

// IsBackward reports whether target lies behind s in the lifecycle order.
// Diagnostic helper; backward moves are only legal via admin override.
func (s Status) IsBackward(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return target < s
}
