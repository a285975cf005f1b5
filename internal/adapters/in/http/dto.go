package http

import (
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
)

// Error is the JSON error envelope returned for all failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Address carries a postal address on the wire, both directions.
type Address struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone,omitempty"`
}

func (a Address) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(
		a.Name, a.Company, a.Line1, a.Line2,
		a.City, a.State, a.PostalCode, a.CountryCode, a.Phone,
	)
}

func addressFromDomain(addr kernel.Address) Address {
	return Address{
		Name:        addr.Name(),
		Company:     addr.Company(),
		Line1:       addr.Line1(),
		Line2:       addr.Line2(),
		City:        addr.City(),
		State:       addr.State(),
		PostalCode:  addr.PostalCode(),
		CountryCode: addr.CountryCode(),
		Phone:       addr.Phone(),
	}
}

// Dimensions carries parcel dimensions in inches.
type Dimensions struct {
	LengthIn float64 `json:"lengthIn"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
}

func (d Dimensions) toDomain() (kernel.Dimensions, error) {
	return kernel.NewDimensions(d.LengthIn, d.WidthIn, d.HeightIn)
}

func dimensionsFromDomain(dims kernel.Dimensions) Dimensions {
	return Dimensions{
		LengthIn: dims.LengthIn(),
		WidthIn:  dims.WidthIn(),
		HeightIn: dims.HeightIn(),
	}
}

// CreateShipmentRequest adds a parcel to an order. Exactly one of
// boxPresetId and customDimensions must be set.
type CreateShipmentRequest struct {
	BoxPresetID      *string     `json:"boxPresetId,omitempty"`
	CustomDimensions *Dimensions `json:"customDimensions,omitempty"`
	WeightLb         *float64    `json:"weightLb,omitempty"`
}

// UpdateShipmentRequest partially edits a shipment. Absent fields stay
// unchanged; useCustomDimensions without customDimensions switches back to
// the last entered custom size.
type UpdateShipmentRequest struct {
	BoxPresetID         *string     `json:"boxPresetId,omitempty"`
	UseCustomDimensions bool        `json:"useCustomDimensions,omitempty"`
	CustomDimensions    *Dimensions `json:"customDimensions,omitempty"`
	WeightLb            *float64    `json:"weightLb,omitempty"`
	QuoteSelectedID     *string     `json:"quoteSelectedId,omitempty"`
}

// BuyLabelRequest purchases a label for a shipment.
type BuyLabelRequest struct {
	Destination Address `json:"destination"`
	QuoteID     string  `json:"quoteId,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`
}

// ShipmentQuotesRequest fetches rate options for a persisted shipment.
type ShipmentQuotesRequest struct {
	Destination Address `json:"destination"`
	Refresh     bool    `json:"refresh,omitempty"`
}

// AdHocQuotesRequest fetches rate options for a parcel described inline.
type AdHocQuotesRequest struct {
	Dimensions  Dimensions `json:"dimensions"`
	WeightLb    float64    `json:"weightLb"`
	Destination Address    `json:"destination"`
}

// PresetRequest creates or fully replaces a box preset.
type PresetRequest struct {
	Name            string     `json:"name"`
	Dimensions      Dimensions `json:"dimensions"`
	DefaultWeightLb *float64   `json:"defaultWeightLb,omitempty"`
}

// Shipment is one parcel row in a shipment list response.
type Shipment struct {
	ID                 string      `json:"id"`
	ParcelIndex        int         `json:"parcelIndex"`
	BoxPresetID        *string     `json:"boxPresetId,omitempty"`
	BoxPresetName      string      `json:"boxPresetName,omitempty"`
	PresetDeleted      bool        `json:"presetDeleted,omitempty"`
	EffectiveDims      Dimensions  `json:"effectiveDimensions"`
	CustomDims         *Dimensions `json:"customDimensions,omitempty"`
	WeightLb           float64     `json:"weightLb"`
	LabelState         string      `json:"labelState"`
	Carrier            string      `json:"carrier,omitempty"`
	Service            string      `json:"service,omitempty"`
	TrackingNumber     string      `json:"trackingNumber,omitempty"`
	LabelURL           string      `json:"labelUrl,omitempty"`
	LabelCostCents     *int64      `json:"labelCostCents,omitempty"`
	LabelCostCurrency  string      `json:"labelCostCurrency,omitempty"`
	QuoteSelectedID    string      `json:"quoteSelectedId,omitempty"`
	ErrorMessage       string      `json:"errorMessage,omitempty"`
	NeedsStatusRefresh bool        `json:"needsStatusRefresh,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	PurchasedAt        *time.Time  `json:"purchasedAt,omitempty"`
}

// ShipmentList is the full parcel list for an order. The total sums
// confirmed label costs over generated shipments only.
type ShipmentList struct {
	Shipments             []Shipment `json:"shipments"`
	ActualLabelTotalCents int64      `json:"actualLabelTotalCents"`
}

func shipmentListFromQuery(res queries.ListShipmentsQueryResponse) ShipmentList {
	shipments := make([]Shipment, len(res.Shipments))
	for i, row := range res.Shipments {
		shipments[i] = shipmentFromReadModel(row)
	}
	return ShipmentList{
		Shipments:             shipments,
		ActualLabelTotalCents: res.ActualLabelTotalCents,
	}
}

func shipmentFromReadModel(row queries.ShipmentReadModel) Shipment {
	s := Shipment{
		ID:                 row.ID.String(),
		ParcelIndex:        row.ParcelIndex,
		BoxPresetName:      row.BoxPresetName,
		PresetDeleted:      row.PresetDeleted,
		EffectiveDims:      dimensionsFromDomain(row.EffectiveDims),
		WeightLb:           row.WeightLb,
		LabelState:         row.LabelState,
		Carrier:            row.Carrier,
		Service:            row.Service,
		TrackingNumber:     row.TrackingNumber,
		LabelURL:           row.LabelURL,
		LabelCostCents:     row.LabelCostCents,
		LabelCostCurrency:  row.LabelCostCurrency,
		QuoteSelectedID:    row.QuoteSelectedID,
		ErrorMessage:       row.ErrorMessage,
		NeedsStatusRefresh: row.NeedsStatusRefresh,
		CreatedAt:          row.CreatedAt,
		PurchasedAt:        row.PurchasedAt,
	}
	if row.BoxPresetID != nil {
		id := row.BoxPresetID.String()
		s.BoxPresetID = &id
	}
	if row.CustomDims != nil {
		dims := dimensionsFromDomain(*row.CustomDims)
		s.CustomDims = &dims
	}
	return s
}

// Rate is one carrier rate option in a quotes response.
type Rate struct {
	QuoteID    string `json:"quoteId"`
	Carrier    string `json:"carrier"`
	Service    string `json:"service"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	EtaDaysMin *int   `json:"etaDaysMin,omitempty"`
	EtaDaysMax *int   `json:"etaDaysMax,omitempty"`
}

// QuoteWarning annotates a quotes response whose provider answer carried no
// usable rates.
type QuoteWarning struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	HadError   bool   `json:"hadError,omitempty"`
	ErrorCode  string `json:"errorCode,omitempty"`
}

// QuotesResponse is a rate quote answer. Cheapest repeats the lowest-priced
// rate so a storefront can show an estimated cost without scanning the list.
type QuotesResponse struct {
	Rates     []Rate        `json:"rates"`
	Cheapest  *Rate         `json:"cheapest,omitempty"`
	Cached    bool          `json:"cached"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Warning   *QuoteWarning `json:"warning,omitempty"`
}

func quotesResponseFromQuery(res queries.QuotesQueryResponse) QuotesResponse {
	rates := make([]Rate, len(res.Rates))
	for i, rate := range res.Rates {
		rates[i] = Rate{
			QuoteID:    rate.QuoteID,
			Carrier:    rate.Carrier,
			Service:    rate.Service,
			PriceCents: rate.PriceCents,
			Currency:   rate.Currency,
			EtaDaysMin: rate.EtaDaysMin,
			EtaDaysMax: rate.EtaDaysMax,
		}
	}
	response := QuotesResponse{
		Rates:     rates,
		Cached:    res.Cached,
		ExpiresAt: res.ExpiresAt,
	}
	for i := range rates {
		if response.Cheapest == nil || rates[i].PriceCents < response.Cheapest.PriceCents {
			response.Cheapest = &rates[i]
		}
	}
	if res.Warning != nil {
		response.Warning = &QuoteWarning{
			Message:    res.Warning.Message,
			StatusCode: res.Warning.StatusCode,
			HadError:   res.Warning.HadError,
			ErrorCode:  res.Warning.ErrorCode,
		}
	}
	return response
}

// Preset is one box preset row in the catalog.
type Preset struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Dimensions      Dimensions `json:"dimensions"`
	DefaultWeightLb *float64   `json:"defaultWeightLb,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func presetFromReadModel(row queries.PresetReadModel) Preset {
	return Preset{
		ID:              row.ID.String(),
		Name:            row.Name,
		Dimensions:      dimensionsFromDomain(row.Dimensions),
		DefaultWeightLb: row.DefaultWeightLb,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// ShipFrom is the singleton origin address response. Address is absent until
// a record has been saved.
type ShipFrom struct {
	Configured bool       `json:"configured"`
	Address    *Address   `json:"address,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func shipFromFromReadModel(row queries.ShipFromReadModel) ShipFrom {
	response := ShipFrom{Configured: row.Configured}
	if row.Configured {
		addr := addressFromDomain(row.Address)
		response.Address = &addr
		at := row.UpdatedAt
		response.UpdatedAt = &at
	}
	return response
}
