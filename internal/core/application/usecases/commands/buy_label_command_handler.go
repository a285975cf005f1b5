package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/keymutex"
)

// ErrPurchaseAttemptInFlight is returned when a purchase or status refresh
// for the same shipment is already running. The caller should retry after
// the in-flight attempt resolves.
var ErrPurchaseAttemptInFlight = errors.New("a purchase attempt for this shipment is already in flight")

// BuyLabelResult reports the outcome of a purchase attempt that did not end
// in an error. PendingRefresh is set when the provider accepted the request
// but label generation is asynchronous.
type BuyLabelResult struct {
	Shipment       *shipment.Shipment
	PendingRefresh bool
}

// BuyLabelCommandHandler coordinates a label purchase: it serializes attempts
// per shipment, resolves the rate quote to buy against, calls the provider,
// and maps the tagged outcome onto the aggregate.
//
// Failure semantics: a definitive provider rejection moves the shipment to
// the failed state and is persisted; a transport-level failure changes
// nothing, because the purchase may have succeeded on the provider's side.
type BuyLabelCommandHandler struct {
	uowFactory UoWFactory
	quotes     QuoteSource
	gateway    ports.CarrierGateway
	selector   services.RateSelector
	locks      *keymutex.KeyMutex
}

// NewBuyLabelCommandHandler creates a handler for label purchases. The locks
// argument must be shared with the status refresh handler so that a purchase
// and a refresh for the same shipment never interleave.
func NewBuyLabelCommandHandler(
	uowFactory UoWFactory,
	quotes QuoteSource,
	gateway ports.CarrierGateway,
	locks *keymutex.KeyMutex,
) BuyLabelCommandHandler {
	return BuyLabelCommandHandler{
		uowFactory: uowFactory,
		quotes:     quotes,
		gateway:    gateway,
		selector:   services.NewRateSelector(),
		locks:      locks,
	}
}

// Handle runs one purchase attempt. Concurrent attempts for the same
// shipment are rejected with ErrPurchaseAttemptInFlight rather than queued,
// so a double-clicked buy button cannot purchase two labels.
func (h *BuyLabelCommandHandler) Handle(ctx context.Context, cmd BuyLabelCommand) (BuyLabelResult, error) {
	if err := cmd.Validate(); err != nil {
		return BuyLabelResult{}, err
	}

	lockKey := cmd.ShipmentID().String()
	if !h.locks.TryLock(lockKey) {
		return BuyLabelResult{}, ErrPurchaseAttemptInFlight
	}
	defer h.locks.Unlock(lockKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BuyLabelResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return BuyLabelResult{}, err
	}

	now := time.Now().UTC()
	if err = s.BeginPurchase(now); err != nil {
		return BuyLabelResult{}, err
	}

	shipFrom, err := uow.ShipFromRepository().Get(ctx)
	if err != nil {
		return BuyLabelResult{}, err
	}

	parcel, err := h.resolveParcel(ctx, uow, s)
	if err != nil {
		return BuyLabelResult{}, err
	}

	quote, err := h.resolveQuote(ctx, cmd, s, shipFrom.Address(), parcel)
	if err != nil {
		return BuyLabelResult{}, err
	}
	if err = s.SelectQuote(quote.ID(), now); err != nil {
		return BuyLabelResult{}, err
	}

	// A transport failure here leaves the shipment untouched: the attempt
	// may have gone through, so only a definitive provider answer is allowed
	// to change the label state.
	purchased, err := h.gateway.PurchaseLabel(ctx, quote.ID(), shipFrom.Address(), cmd.Destination(), parcel)
	if err != nil {
		return BuyLabelResult{}, err
	}

	return h.applyOutcome(ctx, uow, s, purchased, now)
}

func (h *BuyLabelCommandHandler) applyOutcome(
	ctx context.Context,
	uow UoW,
	s *shipment.Shipment,
	purchased ports.PurchaseResult,
	now time.Time,
) (BuyLabelResult, error) {
	var rejection error

	switch purchased.Outcome {
	case ports.OutcomeConfirmed:
		if err := s.ApplyPurchaseConfirmed(purchased.Label, now); err != nil {
			return BuyLabelResult{}, err
		}
	case ports.OutcomePendingAsync:
		if err := s.ApplyPurchasePending(purchased.ProviderShipmentID, now); err != nil {
			return BuyLabelResult{}, err
		}
	case ports.OutcomeRejected:
		if err := s.ApplyPurchaseRejected(purchased.RejectionDetail, now); err != nil {
			return BuyLabelResult{}, err
		}
		rejection = errs.NewProviderRejectedError(s.ErrorMessage())
	case ports.OutcomeUnknown:
		return BuyLabelResult{}, errs.NewValueIsInvalidError("purchaseOutcome")
	}

	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
		return BuyLabelResult{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return BuyLabelResult{}, err
	}

	if rejection != nil {
		return BuyLabelResult{Shipment: s}, rejection
	}
	return BuyLabelResult{
		Shipment:       s,
		PendingRefresh: purchased.Outcome == ports.OutcomePendingAsync,
	}, nil
}

// resolveParcel builds the provider parcel spec. A still-resolvable preset
// contributes its live dimensions; a deleted preset falls back to the
// dimensions snapshotted on the shipment.
func (h *BuyLabelCommandHandler) resolveParcel(
	ctx context.Context,
	uow UoW,
	s *shipment.Shipment,
) (ports.ParcelSpec, error) {
	dims := s.EffectiveDimensions()
	if presetID := s.BoxPresetID(); presetID != nil {
		preset, err := uow.PresetRepository().Get(ctx, *presetID)
		switch {
		case err == nil:
			dims = preset.Dimensions()
		case errors.Is(err, errs.ErrObjectNotFound):
			// Preset deleted after the shipment referenced it.
		default:
			return ports.ParcelSpec{}, err
		}
	}
	return ports.ParcelSpec{Dimensions: dims, Weight: s.Weight()}, nil
}

// resolveQuote picks the quote to buy against. Without an explicit id, a
// stored selection, or a requested refresh there is nothing to purchase
// against and the attempt fails before the provider is contacted. A refresh
// buys the cheapest rate from the fresh list; an explicitly requested id
// that is no longer in the latest rate list fails with a stale quote error
// instead of purchasing at a different price.
func (h *BuyLabelCommandHandler) resolveQuote(
	ctx context.Context,
	cmd BuyLabelCommand,
	s *shipment.Shipment,
	shipFrom kernel.Address,
	parcel ports.ParcelSpec,
) (shipment.Quote, error) {
	quoteID := cmd.QuoteSelectedID()
	if quoteID == "" {
		quoteID = s.QuoteSelectedID()
	}
	if quoteID == "" && !cmd.Refresh() {
		return shipment.Quote{}, errs.ErrNoQuoteSelected
	}

	res, err := h.quotes.GetQuotes(ctx, s.ID(), shipFrom, cmd.Destination(), parcel, cmd.Refresh())
	if err != nil {
		return shipment.Quote{}, err
	}
	return h.selector.Resolve(res.Rates, quoteID)
}
