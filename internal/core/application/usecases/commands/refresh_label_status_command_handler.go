package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/keymutex"
)

// RefreshLabelStatusResult reports a status refresh outcome. Refreshed is
// true when the poll resolved the purchase (confirmed or rejected);
// PendingRefresh is true when the provider still has not finished.
type RefreshLabelStatusResult struct {
	Shipment       *shipment.Shipment
	Refreshed      bool
	PendingRefresh bool
}

// RefreshLabelStatusCommandHandler re-polls the provider for shipments in
// the pending-with-provider-id window and maps the resolved outcome onto the
// aggregate with the same rules as a synchronous purchase.
type RefreshLabelStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	gateway    ports.CarrierGateway
	locks      *keymutex.KeyMutex
}

// NewRefreshLabelStatusCommandHandler creates a handler for label status
// refreshes. The locks argument must be the same instance the purchase
// handler uses.
func NewRefreshLabelStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	gateway ports.CarrierGateway,
	locks *keymutex.KeyMutex,
) RefreshLabelStatusCommandHandler {
	return RefreshLabelStatusCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		locks:      locks,
	}
}

// Handle runs one status poll. A shipment that does not need a refresh (no
// provider shipment id, or already resolved) is returned unchanged with
// Refreshed=false. A transport failure changes nothing.
func (h *RefreshLabelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshLabelStatusCommand,
) (RefreshLabelStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return RefreshLabelStatusResult{}, err
	}

	lockKey := cmd.ShipmentID().String()
	if !h.locks.TryLock(lockKey) {
		return RefreshLabelStatusResult{}, ErrPurchaseAttemptInFlight
	}
	defer h.locks.Unlock(lockKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RefreshLabelStatusResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return RefreshLabelStatusResult{}, err
	}
	if !s.NeedsStatusRefresh() {
		return RefreshLabelStatusResult{Shipment: s}, nil
	}

	status, err := h.gateway.GetLabelStatus(ctx, s.ProviderShipmentID())
	if err != nil {
		return RefreshLabelStatusResult{}, err
	}

	now := time.Now().UTC()
	var rejection error

	switch status.Outcome {
	case ports.OutcomeConfirmed:
		if err = s.ApplyPurchaseConfirmed(status.Label, now); err != nil {
			return RefreshLabelStatusResult{}, err
		}
	case ports.OutcomeRejected:
		if err = s.ApplyPurchaseRejected(status.RejectionDetail, now); err != nil {
			return RefreshLabelStatusResult{}, err
		}
		rejection = errs.NewProviderRejectedError(s.ErrorMessage())
	case ports.OutcomePendingAsync:
		// Still generating; nothing to persist.
		return RefreshLabelStatusResult{Shipment: s, PendingRefresh: true}, nil
	case ports.OutcomeUnknown:
		return RefreshLabelStatusResult{}, errs.NewValueIsInvalidError("purchaseOutcome")
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return RefreshLabelStatusResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return RefreshLabelStatusResult{}, err
	}

	if rejection != nil {
		return RefreshLabelStatusResult{Shipment: s, Refreshed: true}, rejection
	}
	return RefreshLabelStatusResult{Shipment: s, Refreshed: true}, nil
}
