package easyship

import (
	"context"
	"fmt"
)

// APIClient defines the interface for Easyship API operations. The
// abstraction allows a mock implementation during development and testing
// and the real HTTP implementation in production.
type APIClient interface {
	// GetRates fetches carrier rate options for one parcel.
	GetRates(ctx context.Context, req *RatesRequest) (*RatesResponse, error)

	// BuyLabel purchases a label against a previously quoted rate.
	BuyLabel(ctx context.Context, req *PurchaseRequest) (*ShipmentResponse, error)

	// GetShipment retrieves the current state of a shipment, used to poll
	// purchases whose label generation is asynchronous.
	GetShipment(ctx context.Context, shipmentID string) (*ShipmentResponse, error)
}

// Shipment status values on the wire.
const (
	statusGenerated = "generated"
	statusPending   = "pending"
	statusRejected  = "rejected"
)

// RatesRequest represents an Easyship rate quote request.
// POST /rates endpoint.
type RatesRequest struct {
	Origin      AddressDTO `json:"origin_address"`
	Destination AddressDTO `json:"destination_address"`
	Parcel      ParcelDTO  `json:"parcel"`
}

// AddressDTO represents an origin or destination address.
type AddressDTO struct {
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name,omitempty"`
	Line1       string `json:"line_1"`
	Line2       string `json:"line_2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_alpha2"` // ISO 3166-1 alpha-2 code
	Phone       string `json:"contact_phone,omitempty"`
}

// ParcelDTO represents a single parcel.
type ParcelDTO struct {
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	WeightLb float64 `json:"weight_lb"`
}

// RatesResponse represents the Easyship rate quote response. Zero rates is
// a legitimate answer (no service to that destination), not an error.
type RatesResponse struct {
	Rates []RateDTO `json:"rates"`
}

// RateDTO represents a single carrier rate option. Rate ids are scoped to
// the request that produced them and expire on the provider's side.
type RateDTO struct {
	ID              string  `json:"id"`
	Carrier         string  `json:"courier_name"`
	Service         string  `json:"service_name"`
	TotalCharge     float64 `json:"total_charge"`
	Currency        string  `json:"currency"`
	MinDeliveryDays *int    `json:"min_delivery_days,omitempty"`
	MaxDeliveryDays *int    `json:"max_delivery_days,omitempty"`
}

// PurchaseRequest represents an Easyship label purchase.
// POST /labels endpoint.
type PurchaseRequest struct {
	RateID      string     `json:"rate_id"`
	Origin      AddressDTO `json:"origin_address"`
	Destination AddressDTO `json:"destination_address"`
	Parcel      ParcelDTO  `json:"parcel"`
}

// ShipmentResponse represents the provider's view of a shipment after a
// purchase or a status poll. Status is one of "generated", "pending",
// "rejected"; the label fields are populated only when generated.
type ShipmentResponse struct {
	ShipmentID       string  `json:"shipment_id"`
	Status           string  `json:"status"`
	LabelID          string  `json:"label_id,omitempty"`
	Carrier          string  `json:"courier_name,omitempty"`
	Service          string  `json:"service_name,omitempty"`
	TrackingNumber   string  `json:"tracking_number,omitempty"`
	LabelURL         string  `json:"label_url,omitempty"`
	TotalCharge      float64 `json:"total_charge,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	RejectionMessage string  `json:"rejection_message,omitempty"`
}

// APIError represents a definitive error answer from the Easyship API.
// Transport-level failures are returned as plain errors instead, because
// the provider may have processed the request even though the response
// was lost.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("easyship api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}
