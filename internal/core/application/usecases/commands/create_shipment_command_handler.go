package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// CreateShipmentCommandHandler handles the business logic for adding a
// parcel to an order: it resolves the preset (snapshotting its dimensions
// and name onto the shipment), assigns the next parcel index, and persists
// the shipment in the pending label state.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory UoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the shipment creation command and returns the created
// aggregate. parcelIndex is the count of existing shipments for the order.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
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

	source, weight, err := h.resolveSourceAndWeight(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	shipmentRepo := uow.ShipmentRepository()
	parcelIndex, err := shipmentRepo.CountByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	s, err := shipment.NewShipment(kernel.NewUUID(), cmd.OrderID(), parcelIndex, source, weight, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = shipmentRepo.Add(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (h *CreateShipmentCommandHandler) resolveSourceAndWeight(
	ctx context.Context,
	uow UoW,
	cmd CreateShipmentCommand,
) (shipment.DimensionSource, kernel.Weight, error) {
	var source shipment.DimensionSource
	var defaultWeight *kernel.Weight

	if presetID := cmd.BoxPresetID(); presetID != nil {
		preset, err := uow.PresetRepository().Get(ctx, *presetID)
		if err != nil {
			return shipment.DimensionSource{}, kernel.Weight{}, err
		}
		source, err = shipment.NewPresetDimensionSource(preset.ID(), preset.Name(), preset.Dimensions())
		if err != nil {
			return shipment.DimensionSource{}, kernel.Weight{}, err
		}
		defaultWeight = preset.DefaultWeight()
	} else {
		var err error
		source, err = shipment.NewCustomDimensionSource(*cmd.CustomDims())
		if err != nil {
			return shipment.DimensionSource{}, kernel.Weight{}, err
		}
	}

	if weightLb := cmd.WeightLb(); weightLb != nil {
		weight, err := kernel.NewWeight(*weightLb)
		if err != nil {
			return shipment.DimensionSource{}, kernel.Weight{}, err
		}
		return source, weight, nil
	}
	if defaultWeight != nil {
		return source, *defaultWeight, nil
	}

	return shipment.DimensionSource{}, kernel.Weight{}, errs.NewValueIsRequiredError("weightLb")
}
