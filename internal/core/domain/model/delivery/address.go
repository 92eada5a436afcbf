package delivery

import (
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"

	"parceltrack/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the destination of a delivery. Immutable value object; the zero
// value is invalid and will fail validation.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress creates a destination address. Street and city are required;
// the postal code is optional.
func NewAddress(street, city, postalCode string) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setStreet(street), a.setCity(city)); err != nil {
		return Address{}, err
	}
	a.postalCode = postalCode

	return a, nil
}

// Validate checks if the Address was properly constructed using the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code, possibly empty.
func (a Address) PostalCode() string {
	return a.postalCode
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street && a.city == other.city && a.postalCode == other.postalCode
}

// String returns a single-line rendering of the address.
func (a Address) String() string {
	if a.postalCode == "" {
		return fmt.Sprintf("%s, %s", a.street, a.city)
	}
	return fmt.Sprintf("%s, %s %s", a.street, a.postalCode, a.city)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
