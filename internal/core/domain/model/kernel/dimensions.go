package kernel

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrDimensionsAreNotConstructed is returned when attempting to use an improperly
// initialized Dimensions value. Dimensions must be created via NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions represents the physical size of a parcel in inches.
// Dimensions is an immutable value object; all three sides must be
// strictly positive. The zero value is invalid and will fail validation.
//
// Example:
//
//	dims, err := kernel.NewDimensions(10, 8, 6)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(dims) // Output: 10x8x6 in
type Dimensions struct { //nolint:recvcheck //using for validation
	lengthIn float64
	widthIn  float64
	heightIn float64
	guard    guard.ConstructorGuard
}

// NewDimensions creates parcel dimensions with the given sides in inches.
// Each side must be strictly positive.
func NewDimensions(lengthIn, widthIn, heightIn float64) (Dimensions, error) {
	dims := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dims.setLength(lengthIn),
		dims.setWidth(widthIn),
		dims.setHeight(heightIn),
	); err != nil {
		return Dimensions{}, err
	}

	return dims, nil
}

// Validate checks if the Dimensions value was properly constructed.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// LengthIn returns the parcel length in inches.
func (d Dimensions) LengthIn() float64 {
	return d.lengthIn
}

// WidthIn returns the parcel width in inches.
func (d Dimensions) WidthIn() float64 {
	return d.widthIn
}

// HeightIn returns the parcel height in inches.
func (d Dimensions) HeightIn() float64 {
	return d.heightIn
}

// IsEqual compares two dimension values side by side.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.lengthIn == other.lengthIn &&
		d.widthIn == other.widthIn &&
		d.heightIn == other.heightIn
}

// String returns a human-readable "LxWxH in" representation.
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g in", d.lengthIn, d.widthIn, d.heightIn)
}

func (d *Dimensions) setLength(lengthIn float64) error {
	if lengthIn <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lengthIn",
			fmt.Errorf("%g is not greater than 0", lengthIn))
	}
	d.lengthIn = lengthIn
	return nil
}

func (d *Dimensions) setWidth(widthIn float64) error {
	if widthIn <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("widthIn",
			fmt.Errorf("%g is not greater than 0", widthIn))
	}
	d.widthIn = widthIn
	return nil
}

func (d *Dimensions) setHeight(heightIn float64) error {
	if heightIn <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("heightIn",
			fmt.Errorf("%g is not greater than 0", heightIn))
	}
	d.heightIn = heightIn
	return nil
}
