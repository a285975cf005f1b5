package services

import (
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// RateSelector is a domain service that resolves which rate quote a label
// purchase should be attempted against.
//
// Business rules:
//   - An explicitly requested quote id must still be present in the latest
//     (unexpired) rate list; a stale quote id must not silently succeed
//     with wrong pricing
//   - Without an explicit id, the cheapest available rate wins
//   - Ties on price are broken by the order the provider returned them in
type RateSelector struct{}

// NewRateSelector creates a new RateSelector instance.
func NewRateSelector() RateSelector {
	return RateSelector{}
}

// Resolve picks the quote to purchase against. When quoteID is non-empty it
// must match a rate in rates; otherwise the cheapest rate is chosen.
func (RateSelector) Resolve(rates []shipment.Quote, quoteID string) (shipment.Quote, error) {
	if quoteID != "" {
		for _, rate := range rates {
			if rate.ID() == quoteID {
				return rate, nil
			}
		}
		return shipment.Quote{}, errs.NewStaleQuoteError(quoteID)
	}

	return Cheapest(rates)
}

// Cheapest returns the lowest-priced rate from a non-empty rate list.
func Cheapest(rates []shipment.Quote) (shipment.Quote, error) {
	if len(rates) == 0 {
		return shipment.Quote{}, errs.ErrNoQuoteSelected
	}

	best := rates[0]
	for _, rate := range rates[1:] {
		if rate.Price().AmountCents() < best.Price().AmountCents() {
			best = rate
		}
	}
	return best, nil
}
