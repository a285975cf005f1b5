package shipment

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrQuoteIsNotConstructed is returned when validating a zero-value Quote.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// Quote is a priced carrier+service option for a parcel. Its id is
// provider-scoped and not guaranteed stable across separate quote requests,
// so quotes are never persisted long-term: they live in the quote cache with
// an expiry, and a selected quote id is only an attempt record that is
// re-validated against the live cache entry before use.
type Quote struct { //nolint:recvcheck //using for validation
	id         string
	carrier    string
	service    string
	price      kernel.Money
	etaDaysMin *int
	etaDaysMax *int

	guard guard.ConstructorGuard
}

// NewQuote creates a rate quote. ID, carrier, and service are required;
// the delivery-estimate bounds are optional.
func NewQuote(id, carrier, service string, price kernel.Money, etaDaysMin, etaDaysMax *int) (Quote, error) {
	if id == "" {
		return Quote{}, errs.NewValueIsRequiredError("quoteId")
	}
	if carrier == "" {
		return Quote{}, errs.NewValueIsRequiredError("carrier")
	}
	if service == "" {
		return Quote{}, errs.NewValueIsRequiredError("service")
	}
	if err := price.Validate(); err != nil {
		return Quote{}, err
	}

	return Quote{
		id:         id,
		carrier:    carrier,
		service:    service,
		price:      price,
		etaDaysMin: etaDaysMin,
		etaDaysMax: etaDaysMax,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Quote was created through the constructor.
func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// ID returns the provider-scoped rate identifier.
func (q Quote) ID() string { return q.id }

// Carrier returns the carrier name.
func (q Quote) Carrier() string { return q.carrier }

// Service returns the carrier service name.
func (q Quote) Service() string { return q.service }

// Price returns the quoted price.
func (q Quote) Price() kernel.Money { return q.price }

// EtaDaysMin returns the optional lower delivery-estimate bound in days.
func (q Quote) EtaDaysMin() *int { return q.etaDaysMin }

// EtaDaysMax returns the optional upper delivery-estimate bound in days.
func (q Quote) EtaDaysMax() *int { return q.etaDaysMax }
