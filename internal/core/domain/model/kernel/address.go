package kernel

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address value. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a postal address used both as the ship-from origin and
// as a parcel destination. It is an immutable value object. Name, the first
// address line, city, postal code, and country code are required; the rest
// are optional.
type Address struct { //nolint:recvcheck //using for validation
	name        string
	company     string
	line1       string
	line2       string
	city        string
	state       string
	postalCode  string
	countryCode string
	phone       string
	guard       guard.ConstructorGuard
}

// NewAddress creates a validated postal address.
func NewAddress(name, company, line1, line2, city, state, postalCode, countryCode, phone string) (Address, error) {
	addr := Address{
		company: company,
		line2:   line2,
		state:   state,
		phone:   phone,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setName(name),
		addr.setLine1(line1),
		addr.setCity(city),
		addr.setPostalCode(postalCode),
		addr.setCountryCode(countryCode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Name returns the contact name.
func (a Address) Name() string { return a.name }

// Company returns the optional company name.
func (a Address) Company() string { return a.company }

// Line1 returns the first address line.
func (a Address) Line1() string { return a.line1 }

// Line2 returns the optional second address line.
func (a Address) Line2() string { return a.line2 }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the optional state or region.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// CountryCode returns the two-letter (or provider-specific) country code.
func (a Address) CountryCode() string { return a.countryCode }

// Phone returns the optional phone number.
func (a Address) Phone() string { return a.phone }

func (a *Address) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Address) setLine1(line1 string) error {
	if line1 == "" {
		return errs.NewValueIsRequiredError("addressLine1")
	}
	a.line1 = line1
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setCountryCode(countryCode string) error {
	if countryCode == "" {
		return errs.NewValueIsRequiredError("countryCode")
	}
	a.countryCode = countryCode
	return nil
}
