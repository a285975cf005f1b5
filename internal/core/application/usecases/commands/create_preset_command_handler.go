package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
)

// CreatePresetCommandHandler handles catalog preset creation.
type CreatePresetCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewCreatePresetCommandHandler creates a handler for preset creation.
func NewCreatePresetCommandHandler(uowFactory CatalogUoWFactory) CreatePresetCommandHandler {
	return CreatePresetCommandHandler{uowFactory: uowFactory}
}

// Handle creates and persists the preset, returning the new aggregate.
func (h *CreatePresetCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePresetCommand,
) (*catalog.BoxPreset, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var defaultWeight *kernel.Weight
	if lb := cmd.DefaultWeightLb(); lb != nil {
		w, err := kernel.NewWeight(*lb)
		if err != nil {
			return nil, err
		}
		defaultWeight = &w
	}

	preset, err := catalog.NewBoxPreset(
		kernel.NewUUID(), cmd.Name(), cmd.Dimensions(), defaultWeight, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PresetRepository().Add(ctx, preset); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return preset, nil
}
