package queries

import (
	"context"
	"errors"

	"shipping/internal/core/application/quoting"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// QuoteFetcher is the slice of the quote cache the quote queries need.
type QuoteFetcher interface {
	GetQuotes(
		ctx context.Context,
		shipmentID kernel.UUID,
		shipFrom, destination kernel.Address,
		parcel ports.ParcelSpec,
		forceRefresh bool,
	) (quoting.Result, error)
	GetAdHocQuotes(
		ctx context.Context,
		shipFrom, destination kernel.Address,
		parcel ports.ParcelSpec,
	) (quoting.Result, error)
}

// GetShipmentQuotesQueryHandler serves rate options for persisted shipments
// and ad-hoc parcels. Unlike the list queries it composes repositories with
// the quote cache instead of reading the database directly, because rates
// live in the cache and the provider, never in storage.
type GetShipmentQuotesQueryHandler struct {
	shipments ports.ShipmentRepository
	presets   ports.PresetRepository
	shipFrom  ports.ShipFromRepository
	quotes    QuoteFetcher
}

// NewGetShipmentQuotesQueryHandler creates a handler for quote queries.
func NewGetShipmentQuotesQueryHandler(
	shipments ports.ShipmentRepository,
	presets ports.PresetRepository,
	shipFrom ports.ShipFromRepository,
	quotes QuoteFetcher,
) GetShipmentQuotesQueryHandler {
	return GetShipmentQuotesQueryHandler{
		shipments: shipments,
		presets:   presets,
		shipFrom:  shipFrom,
		quotes:    quotes,
	}
}

// Handle quotes a persisted shipment's parcel using its committed dimensions
// and weight. A still-resolvable preset contributes its live dimensions.
func (h GetShipmentQuotesQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuotesQuery,
) (QuotesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuotesQueryResponse{}, err
	}

	s, err := h.shipments.Get(ctx, query.ShipmentID())
	if err != nil {
		return QuotesQueryResponse{}, err
	}

	origin, err := h.shipFrom.Get(ctx)
	if err != nil {
		return QuotesQueryResponse{}, err
	}

	dims := s.EffectiveDimensions()
	if presetID := s.BoxPresetID(); presetID != nil {
		preset, presetErr := h.presets.Get(ctx, *presetID)
		switch {
		case presetErr == nil:
			dims = preset.Dimensions()
		case errors.Is(presetErr, errs.ErrObjectNotFound):
			// Deleted preset, keep the snapshot.
		default:
			return QuotesQueryResponse{}, presetErr
		}
	}

	parcel := ports.ParcelSpec{Dimensions: dims, Weight: s.Weight()}
	res, err := h.quotes.GetQuotes(ctx, s.ID(), origin.Address(), query.Destination(), parcel, query.Refresh())
	if err != nil {
		return QuotesQueryResponse{}, err
	}

	return toQuotesResponse(res), nil
}

// HandleAdHoc quotes a parcel described inline, bypassing persistence and
// the cache entirely.
func (h GetShipmentQuotesQueryHandler) HandleAdHoc(
	ctx context.Context,
	query GetAdHocQuotesQuery,
) (QuotesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuotesQueryResponse{}, err
	}

	origin, err := h.shipFrom.Get(ctx)
	if err != nil {
		return QuotesQueryResponse{}, err
	}

	parcel := ports.ParcelSpec{Dimensions: query.Dimensions(), Weight: query.Weight()}
	res, err := h.quotes.GetAdHocQuotes(ctx, origin.Address(), query.Destination(), parcel)
	if err != nil {
		return QuotesQueryResponse{}, err
	}

	return toQuotesResponse(res), nil
}

func toQuotesResponse(res quoting.Result) QuotesQueryResponse {
	rates := make([]RateReadModel, 0, len(res.Rates))
	for _, rate := range res.Rates {
		rates = append(rates, toRateReadModel(rate))
	}
	return QuotesQueryResponse{
		Rates:     rates,
		Cached:    res.Cached,
		ExpiresAt: res.ExpiresAt,
		Warning:   res.Warning,
	}
}

func toRateReadModel(rate shipment.Quote) RateReadModel {
	return RateReadModel{
		QuoteID:    rate.ID(),
		Carrier:    rate.Carrier(),
		Service:    rate.Service(),
		PriceCents: rate.Price().AmountCents(),
		Currency:   rate.Price().Currency(),
		EtaDaysMin: rate.EtaDaysMin(),
		EtaDaysMax: rate.EtaDaysMax(),
	}
}
