// Package easyship integrates with the Easyship rate and label API. The
// Client implements ports.CarrierGateway; the split between definitive
// provider answers and ambiguous transport failures happens here, so the
// rest of the engine never inspects HTTP details.
package easyship

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// Config holds Easyship configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	UseMock bool // When true, uses the mock API client
}

// Client is the Easyship carrier gateway. It delegates wire calls to the
// underlying APIClient (mock or HTTP) and maps the answers onto the
// gateway's tagged results.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *slog.Logger
}

// New creates a new Easyship client. If cfg.UseMock is true the client
// runs against the built-in mock API instead of the network.
func New(cfg Config, logger *slog.Logger) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger)
}

// NewWithAPIClient creates an Easyship client with a custom API client,
// useful for injecting mocks in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
	}
}

// QuoteRates requests carrier rate options for a parcel. A definitive
// provider error (4xx) and a successful answer with zero rates both come
// back as a warning-annotated result, never as a Go error; only transport
// failures are errors.
func (c *Client) QuoteRates(
	ctx context.Context,
	shipFrom, destination kernel.Address,
	parcel ports.ParcelSpec,
) (ports.RateQuoteResult, error) {
	resp, err := c.apiClient.GetRates(ctx, &RatesRequest{
		Origin:      addressToAPI(shipFrom),
		Destination: addressToAPI(destination),
		Parcel:      parcelToAPI(parcel),
	})
	if err != nil {
		if apiErr, definitive := asDefinitiveError(err); definitive {
			c.logger.Warn("easyship rejected rate request",
				"status", apiErr.StatusCode, "code", apiErr.Code, "message", apiErr.Message)
			return ports.RateQuoteResult{
				Rates: []shipment.Quote{},
				Warning: &ports.QuoteWarning{
					Message:    apiErr.Message,
					StatusCode: apiErr.StatusCode,
					HadError:   true,
					ErrorCode:  apiErr.Code,
				},
			}, nil
		}
		c.logger.Error("easyship rate request failed", "error", err)
		return ports.RateQuoteResult{}, errs.NewProviderUnavailableError("quote rates", err)
	}

	rates := make([]shipment.Quote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quote, quoteErr := rateToQuote(r)
		if quoteErr != nil {
			return ports.RateQuoteResult{}, fmt.Errorf("malformed rate %q: %w", r.ID, quoteErr)
		}
		rates = append(rates, quote)
	}

	result := ports.RateQuoteResult{Rates: rates}
	if len(rates) == 0 {
		result.Warning = &ports.QuoteWarning{
			Message:    "no rates available for this destination",
			StatusCode: http.StatusOK,
		}
	}

	c.logger.Info("easyship rates fetched", "count", len(rates))
	return result, nil
}

// PurchaseLabel attempts to buy a label against a quoted rate. Definitive
// answers (confirmed, pending, rejected) are returned as a tagged result;
// transport failures are retryable errors, because the purchase may have
// succeeded on the provider's side even though the response was lost.
func (c *Client) PurchaseLabel(
	ctx context.Context,
	quoteID string,
	shipFrom, destination kernel.Address,
	parcel ports.ParcelSpec,
) (ports.PurchaseResult, error) {
	resp, err := c.apiClient.BuyLabel(ctx, &PurchaseRequest{
		RateID:      quoteID,
		Origin:      addressToAPI(shipFrom),
		Destination: addressToAPI(destination),
		Parcel:      parcelToAPI(parcel),
	})
	if err != nil {
		if apiErr, definitive := asDefinitiveError(err); definitive {
			c.logger.Warn("easyship rejected label purchase",
				"rate_id", quoteID, "status", apiErr.StatusCode, "message", apiErr.Message)
			return ports.PurchaseResult{
				Outcome:         ports.OutcomeRejected,
				RejectionDetail: apiErr.Message,
			}, nil
		}
		c.logger.Error("easyship label purchase failed", "rate_id", quoteID, "error", err)
		return ports.PurchaseResult{}, errs.NewProviderUnavailableError("purchase label", err)
	}

	return c.shipmentToResult(resp, "purchase label")
}

// GetLabelStatus re-polls the provider for a purchase whose outcome was not
// known synchronously.
func (c *Client) GetLabelStatus(
	ctx context.Context,
	providerShipmentID string,
) (ports.PurchaseResult, error) {
	resp, err := c.apiClient.GetShipment(ctx, providerShipmentID)
	if err != nil {
		if apiErr, definitive := asDefinitiveError(err); definitive {
			c.logger.Warn("easyship rejected status poll",
				"shipment_id", providerShipmentID, "status", apiErr.StatusCode, "message", apiErr.Message)
			return ports.PurchaseResult{
				Outcome:         ports.OutcomeRejected,
				RejectionDetail: apiErr.Message,
			}, nil
		}
		c.logger.Error("easyship status poll failed", "shipment_id", providerShipmentID, "error", err)
		return ports.PurchaseResult{}, errs.NewProviderUnavailableError("get label status", err)
	}

	return c.shipmentToResult(resp, "get label status")
}

// shipmentToResult maps a provider shipment answer onto the tagged result.
// An unrecognized status is treated as ambiguous: the caller retries rather
// than guessing a definitive outcome.
func (c *Client) shipmentToResult(resp *ShipmentResponse, op string) (ports.PurchaseResult, error) {
	switch resp.Status {
	case statusGenerated:
		cost, err := kernel.NewMoney(centsFromDollars(resp.TotalCharge), resp.Currency)
		if err != nil {
			return ports.PurchaseResult{}, fmt.Errorf("malformed label cost for %q: %w", resp.ShipmentID, err)
		}
		c.logger.Info("easyship label confirmed",
			"shipment_id", resp.ShipmentID, "tracking", resp.TrackingNumber)
		return ports.PurchaseResult{
			Outcome: ports.OutcomeConfirmed,
			Label: shipment.LabelInfo{
				ProviderShipmentID: resp.ShipmentID,
				ProviderLabelID:    resp.LabelID,
				Carrier:            resp.Carrier,
				Service:            resp.Service,
				TrackingNumber:     resp.TrackingNumber,
				LabelURL:           resp.LabelURL,
				Cost:               cost,
			},
		}, nil

	case statusPending:
		c.logger.Info("easyship label pending", "shipment_id", resp.ShipmentID)
		return ports.PurchaseResult{
			Outcome:            ports.OutcomePendingAsync,
			ProviderShipmentID: resp.ShipmentID,
		}, nil

	case statusRejected:
		c.logger.Warn("easyship label rejected",
			"shipment_id", resp.ShipmentID, "detail", resp.RejectionMessage)
		return ports.PurchaseResult{
			Outcome:         ports.OutcomeRejected,
			RejectionDetail: resp.RejectionMessage,
		}, nil

	default:
		return ports.PurchaseResult{}, errs.NewProviderUnavailableError(op,
			fmt.Errorf("unrecognized shipment status %q", resp.Status))
	}
}

// asDefinitiveError reports whether err is a definitive provider answer:
// an API error with a 4xx status. 5xx and transport failures stay ambiguous.
func asDefinitiveError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) &&
		apiErr.StatusCode >= http.StatusBadRequest &&
		apiErr.StatusCode < http.StatusInternalServerError {
		return apiErr, true
	}
	return nil, false
}

func addressToAPI(addr kernel.Address) AddressDTO {
	return AddressDTO{
		ContactName: addr.Name(),
		CompanyName: addr.Company(),
		Line1:       addr.Line1(),
		Line2:       addr.Line2(),
		City:        addr.City(),
		State:       addr.State(),
		PostalCode:  addr.PostalCode(),
		CountryCode: addr.CountryCode(),
		Phone:       addr.Phone(),
	}
}

func parcelToAPI(parcel ports.ParcelSpec) ParcelDTO {
	return ParcelDTO{
		LengthIn: parcel.Dimensions.LengthIn(),
		WidthIn:  parcel.Dimensions.WidthIn(),
		HeightIn: parcel.Dimensions.HeightIn(),
		WeightLb: parcel.Weight.Pounds(),
	}
}

func rateToQuote(r RateDTO) (shipment.Quote, error) {
	price, err := kernel.NewMoney(centsFromDollars(r.TotalCharge), r.Currency)
	if err != nil {
		return shipment.Quote{}, err
	}
	return shipment.NewQuote(r.ID, r.Carrier, r.Service, price, r.MinDeliveryDays, r.MaxDeliveryDays)
}

func centsFromDollars(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Ensure Client implements the carrier gateway port
var _ ports.CarrierGateway = (*Client)(nil)
