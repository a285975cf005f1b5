package easyship

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for development and
// testing. By default it answers every rate request with two plausible
// rates and confirms every purchase synchronously; the On* hooks override
// individual operations.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGetRates    func(ctx context.Context, req *RatesRequest) (*RatesResponse, error)
	OnBuyLabel    func(ctx context.Context, req *PurchaseRequest) (*ShipmentResponse, error)
	OnGetShipment func(ctx context.Context, shipmentID string) (*ShipmentResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// GetRates returns mock carrier rates.
func (m *MockAPIClient) GetRates(ctx context.Context, req *RatesRequest) (*RatesResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{StatusCode: 500, Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnGetRates != nil {
		return m.OnGetRates(ctx, req)
	}

	minGround, maxGround := 3, 5
	minPriority, maxPriority := 1, 3

	return &RatesResponse{
		Rates: []RateDTO{
			{
				ID:              "rate_" + uuid.New().String()[:8],
				Carrier:         "UPS",
				Service:         "Ground",
				TotalCharge:     9.45,
				Currency:        "USD",
				MinDeliveryDays: &minGround,
				MaxDeliveryDays: &maxGround,
			},
			{
				ID:              "rate_" + uuid.New().String()[:8],
				Carrier:         "USPS",
				Service:         "Priority Mail",
				TotalCharge:     12.95,
				Currency:        "USD",
				MinDeliveryDays: &minPriority,
				MaxDeliveryDays: &maxPriority,
			},
		},
	}, nil
}

// BuyLabel confirms a mock label purchase synchronously.
func (m *MockAPIClient) BuyLabel(ctx context.Context, req *PurchaseRequest) (*ShipmentResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{StatusCode: 500, Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnBuyLabel != nil {
		return m.OnBuyLabel(ctx, req)
	}

	shipmentID := "es_ship_" + uuid.New().String()[:8]
	trackingNumber := fmt.Sprintf("9400%012d", time.Now().UnixNano()%1000000000000)

	return &ShipmentResponse{
		ShipmentID:     shipmentID,
		Status:         statusGenerated,
		LabelID:        "es_label_" + uuid.New().String()[:8],
		Carrier:        "USPS",
		Service:        "Priority Mail",
		TrackingNumber: trackingNumber,
		LabelURL:       fmt.Sprintf("https://labels.easyship.test/%s.pdf", shipmentID),
		TotalCharge:    12.95,
		Currency:       "USD",
	}, nil
}

// GetShipment returns a mock shipment state with a generated label.
func (m *MockAPIClient) GetShipment(ctx context.Context, shipmentID string) (*ShipmentResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{StatusCode: 500, Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnGetShipment != nil {
		return m.OnGetShipment(ctx, shipmentID)
	}

	return &ShipmentResponse{
		ShipmentID:     shipmentID,
		Status:         statusGenerated,
		LabelID:        "es_label_" + uuid.New().String()[:8],
		Carrier:        "USPS",
		Service:        "Priority Mail",
		TrackingNumber: fmt.Sprintf("9400%012d", time.Now().UnixNano()%1000000000000),
		LabelURL:       fmt.Sprintf("https://labels.easyship.test/%s.pdf", shipmentID),
		TotalCharge:    12.95,
		Currency:       "USD",
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
