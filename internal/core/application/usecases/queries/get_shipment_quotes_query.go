package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetShipmentQuotesQueryIsNotConstructed = errors.New(
		"GetShipmentQuotesQuery must be created via NewGetShipmentQuotesQuery constructor",
	)
	ErrGetAdHocQuotesQueryIsNotConstructed = errors.New(
		"GetAdHocQuotesQuery must be created via NewGetAdHocQuotesQuery constructor",
	)
)

// GetShipmentQuotesQuery retrieves carrier rate options for a persisted
// shipment. Refresh bypasses the quote cache and re-queries the provider.
type GetShipmentQuotesQuery struct {
	shipmentID  kernel.UUID
	destination kernel.Address
	refresh     bool

	guard guard.ConstructorGuard
}

// NewGetShipmentQuotesQuery creates a quote query for a shipment.
func NewGetShipmentQuotesQuery(
	shipmentID kernel.UUID,
	destination kernel.Address,
	refresh bool,
) (GetShipmentQuotesQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuotesQuery{}, err
	}
	if err := destination.Validate(); err != nil {
		return GetShipmentQuotesQuery{}, err
	}
	return GetShipmentQuotesQuery{
		shipmentID:  shipmentID,
		destination: destination,
		refresh:     refresh,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuotesQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQuotesQueryIsNotConstructed)
}

// ShipmentID returns the shipment to quote.
func (q GetShipmentQuotesQuery) ShipmentID() kernel.UUID { return q.shipmentID }

// Destination returns the recipient address to quote against.
func (q GetShipmentQuotesQuery) Destination() kernel.Address { return q.destination }

// Refresh reports whether the cache must be bypassed.
func (q GetShipmentQuotesQuery) Refresh() bool { return q.refresh }

// GetAdHocQuotesQuery retrieves carrier rate options for a parcel that does
// not exist as a persisted shipment, e.g. previewing cost for a custom
// not-yet-ordered piece. Never cached.
type GetAdHocQuotesQuery struct {
	dimensions  kernel.Dimensions
	weight      kernel.Weight
	destination kernel.Address

	guard guard.ConstructorGuard
}

// NewGetAdHocQuotesQuery creates an ad-hoc quote query.
func NewGetAdHocQuotesQuery(
	dimensions kernel.Dimensions,
	weight kernel.Weight,
	destination kernel.Address,
) (GetAdHocQuotesQuery, error) {
	if err := dimensions.Validate(); err != nil {
		return GetAdHocQuotesQuery{}, err
	}
	if err := weight.Validate(); err != nil {
		return GetAdHocQuotesQuery{}, err
	}
	if err := destination.Validate(); err != nil {
		return GetAdHocQuotesQuery{}, err
	}
	return GetAdHocQuotesQuery{
		dimensions:  dimensions,
		weight:      weight,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAdHocQuotesQuery) Validate() error {
	return q.guard.Validate(ErrGetAdHocQuotesQueryIsNotConstructed)
}

// Dimensions returns the parcel dimensions to quote.
func (q GetAdHocQuotesQuery) Dimensions() kernel.Dimensions { return q.dimensions }

// Weight returns the parcel weight to quote.
func (q GetAdHocQuotesQuery) Weight() kernel.Weight { return q.weight }

// Destination returns the recipient address to quote against.
func (q GetAdHocQuotesQuery) Destination() kernel.Address { return q.destination }

// RateReadModel is one carrier rate option in a quote response.
type RateReadModel struct {
	QuoteID    string
	Carrier    string
	Service    string
	PriceCents int64
	Currency   string
	EtaDaysMin *int
	EtaDaysMax *int
}

// QuotesQueryResponse is a rate quote answer. Cached reports whether it was
// served from the cache; Warning annotates a successful provider response
// that carried zero rates.
type QuotesQueryResponse struct {
	Rates     []RateReadModel
	Cached    bool
	ExpiresAt time.Time
	Warning   *ports.QuoteWarning
}
