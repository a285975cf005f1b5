package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// UpdateShipmentCommandHandler handles partial shipment edits. Physical
// changes (dimension source, weight) are rejected once a label has been
// generated and invalidate any cached quotes for the shipment.
type UpdateShipmentCommandHandler struct {
	uowFactory  UoWFactory
	invalidator QuoteInvalidator
}

// NewUpdateShipmentCommandHandler creates a handler for shipment edits.
func NewUpdateShipmentCommandHandler(
	uowFactory UoWFactory,
	invalidator QuoteInvalidator,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{uowFactory: uowFactory, invalidator: invalidator}
}

// Handle applies the edit and returns the updated aggregate. Cached quotes
// are invalidated only after a successful commit of a physical change.
func (h *UpdateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err = h.applyDimensionEdit(ctx, uow, cmd, s, now); err != nil {
		return nil, err
	}
	if weightLb := cmd.WeightLb(); weightLb != nil {
		weight, wErr := kernel.NewWeight(*weightLb)
		if wErr != nil {
			return nil, wErr
		}
		if err = s.SetWeight(weight, now); err != nil {
			return nil, err
		}
	}
	if quoteID := cmd.QuoteSelectedID(); quoteID != nil {
		if err = s.SelectQuote(*quoteID, now); err != nil {
			return nil, err
		}
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if cmd.ChangesPhysicalAttributes() {
		h.invalidator.Invalidate(s.ID())
	}

	return s, nil
}

func (h *UpdateShipmentCommandHandler) applyDimensionEdit(
	ctx context.Context,
	uow UoW,
	cmd UpdateShipmentCommand,
	s *shipment.Shipment,
	now time.Time,
) error {
	if presetID := cmd.BoxPresetID(); presetID != nil {
		preset, err := uow.PresetRepository().Get(ctx, *presetID)
		if err != nil {
			return err
		}
		source, err := shipment.NewPresetDimensionSource(preset.ID(), preset.Name(), preset.Dimensions())
		if err != nil {
			return err
		}
		return s.SetDimensionSource(source, now)
	}

	if !cmd.UseCustomDims() {
		return nil
	}

	dims := cmd.CustomDims()
	if dims == nil {
		// Reuse the custom dimensions the shipment retained while a preset
		// was selected.
		dims = s.CustomDimensions()
		if dims == nil {
			return errs.NewValueIsRequiredError("customDimensions")
		}
	}
	source, err := shipment.NewCustomDimensionSource(*dims)
	if err != nil {
		return err
	}
	return s.SetDimensionSource(source, now)
}
