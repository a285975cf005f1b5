package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrWeightIsNotConstructed is returned when attempting to use an improperly
// initialized Weight value. Weights must be created via NewWeight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight constructor")

// Weight represents a parcel weight in pounds. It is an immutable value
// object; the weight must be strictly positive before a quote or purchase
// can be requested for a parcel.
type Weight struct { //nolint:recvcheck //using for validation
	pounds float64
	guard  guard.ConstructorGuard
}

// NewWeight creates a weight value in pounds. The value must be strictly positive.
func NewWeight(pounds float64) (Weight, error) {
	if pounds <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weightLb",
			fmt.Errorf("%g is not greater than 0", pounds))
	}

	return Weight{
		pounds: pounds,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Weight value was properly constructed.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

// Pounds returns the weight in pounds.
func (w Weight) Pounds() float64 {
	return w.pounds
}

// IsEqual compares two weights.
func (w Weight) IsEqual(other Weight) bool {
	return w.pounds == other.pounds
}

// String returns a human-readable "N lb" representation.
func (w Weight) String() string {
	return fmt.Sprintf("%g lb", w.pounds)
}
