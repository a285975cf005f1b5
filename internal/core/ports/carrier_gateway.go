package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ParcelSpec describes a parcel to the rate/label provider: the effective
// dimensions and weight committed at request time.
type ParcelSpec struct {
	Dimensions kernel.Dimensions
	Weight     kernel.Weight
}

// QuoteWarning annotates a quote response that succeeded but returned zero
// rates (e.g. no service to that destination). It is not an error: it
// carries a human-readable message plus machine-readable hints so the
// caller can distinguish "no service available" from "request malformed".
type QuoteWarning struct {
	Message    string
	StatusCode int
	HadError   bool
	ErrorCode  string
}

// RateQuoteResult is the provider's answer to a rate request. Rates may be
// empty with a non-nil Warning.
type RateQuoteResult struct {
	Rates   []shipment.Quote
	Warning *QuoteWarning
}

// PurchaseOutcome is the tag of a PurchaseResult. The three definitive
// shapes are deliberately distinct from transport failures, which surface
// as retryable errors instead and never carry an outcome.
type PurchaseOutcome int

const (
	// OutcomeUnknown catches uninitialized results.
	OutcomeUnknown PurchaseOutcome = iota

	// OutcomeConfirmed: the provider returned the label id, tracking number,
	// label URL, and final cost immediately.
	OutcomeConfirmed

	// OutcomePendingAsync: the provider acknowledged the purchase request but
	// label generation is asynchronous; poll via GetLabelStatus.
	OutcomePendingAsync

	// OutcomeRejected: the provider returned a definitive error.
	OutcomeRejected
)

// PurchaseResult is the tagged outcome of a label purchase or status lookup.
// Exactly the fields implied by Outcome are populated.
type PurchaseResult struct {
	Outcome PurchaseOutcome

	// Label is set when Outcome is OutcomeConfirmed.
	Label shipment.LabelInfo

	// ProviderShipmentID is set when Outcome is OutcomePendingAsync
	// (when the provider assigned one).
	ProviderShipmentID string

	// RejectionDetail is set when Outcome is OutcomeRejected.
	RejectionDetail string
}

// CarrierGateway is the only boundary through which the engine speaks to the
// real rate/label provider. Implementations must bound every call with the
// supplied context; a timeout or transport failure is returned as a
// retryable error (errs.ErrProviderUnavailable) and never as a rejection,
// because the operation may have succeeded on the provider's side even
// though the response was lost.
type CarrierGateway interface {
	// QuoteRates requests carrier rate options for a described parcel.
	// A successful call with zero rates returns a warning-annotated result.
	QuoteRates(ctx context.Context, shipFrom, destination kernel.Address, parcel ParcelSpec) (RateQuoteResult, error)

	// PurchaseLabel attempts to buy a label against a previously quoted rate.
	// Definitive provider answers (confirmed, pending, rejected) are returned
	// as a PurchaseResult; only transport-level failures are errors.
	PurchaseLabel(ctx context.Context, quoteID string, shipFrom, destination kernel.Address, parcel ParcelSpec) (PurchaseResult, error)

	// GetLabelStatus re-polls the provider for a purchase whose outcome was
	// not known synchronously.
	GetLabelStatus(ctx context.Context, providerShipmentID string) (PurchaseResult, error)
}
