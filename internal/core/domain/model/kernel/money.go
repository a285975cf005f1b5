package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// DefaultCurrency is the currency code assumed when the provider does not
// report one. Persisted amounts are always cents-denominated integers.
const DefaultCurrency = "USD"

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount as an integer number of cents plus an
// ISO 4217 currency code. Amounts are never negative in this domain.
type Money struct { //nolint:recvcheck //using for validation
	amountCents int64
	currency    string
	guard       guard.ConstructorGuard
}

// NewMoney creates a monetary amount. The amount must not be negative and
// the currency must be a three-letter code; an empty currency defaults to
// DefaultCurrency.
func NewMoney(amountCents int64, currency string) (Money, error) {
	if amountCents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amountCents",
			fmt.Errorf("%d is negative", amountCents))
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter currency code", currency))
	}

	return Money{
		amountCents: amountCents,
		currency:    currency,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// AmountCents returns the amount in cents.
func (m Money) AmountCents() int64 {
	return m.amountCents
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two monetary amounts including currency.
func (m Money) IsEqual(other Money) bool {
	return m.amountCents == other.amountCents && m.currency == other.currency
}

// String returns a human-readable "12.34 USD" representation.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amountCents/100, m.amountCents%100, m.currency)
}
