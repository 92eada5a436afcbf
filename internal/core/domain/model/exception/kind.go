package exception

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Kind classifies what went wrong with a parcel.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindInvalidMemberCode marks a parcel whose member code is missing or
	// resolves to no active member. Created automatically at intake.
	KindInvalidMemberCode

	// KindIllegibleLabel marks a parcel whose label cannot be read.
	KindIllegibleLabel

	// KindDamagedParcel marks a parcel received or found damaged.
	KindDamagedParcel

	// KindDuplicateTracking marks a tracking code seen on another parcel.
	KindDuplicateTracking

	// KindConflictingOwnership marks a parcel claimed by more than one member.
	KindConflictingOwnership

	// KindOther covers everything staff cannot classify more precisely.
	KindOther
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:              "UNKNOWN",
		KindInvalidMemberCode:    "INVALID_MEMBER_CODE",
		KindIllegibleLabel:       "ILLEGIBLE_LABEL",
		KindDamagedParcel:        "DAMAGED_PARCEL",
		KindDuplicateTracking:    "DUPLICATE_TRACKING",
		KindConflictingOwnership: "CONFLICTING_OWNERSHIP",
		KindOther:                "OTHER",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindInvalidMemberCode:    "INVALID_MEMBER_CODE",
		KindIllegibleLabel:       "ILLEGIBLE_LABEL",
		KindDamagedParcel:        "DAMAGED_PARCEL",
		KindDuplicateTracking:    "DUPLICATE_TRACKING",
		KindConflictingOwnership: "CONFLICTING_OWNERSHIP",
		KindOther:                "OTHER",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("exception kind is invalid",
			fmt.Errorf("%d is not a valid exception kind", k))
	}
	return nil
}

// String returns the canonical name of the kind, e.g. "DAMAGED_PARCEL".
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// KindFromString parses a canonical kind name into a Kind.
func KindFromString(name string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == name {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("exception kind is invalid",
		fmt.Errorf("%q is not a valid exception kind name", name))
}
