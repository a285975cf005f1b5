package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
)

// UpdatePresetCommandHandler handles catalog preset edits. An edit never
// touches the shipments referencing the preset: their snapshotted dimensions
// stay as entered, only future selections see the new values.
type UpdatePresetCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewUpdatePresetCommandHandler creates a handler for preset edits.
func NewUpdatePresetCommandHandler(uowFactory CatalogUoWFactory) UpdatePresetCommandHandler {
	return UpdatePresetCommandHandler{uowFactory: uowFactory}
}

// Handle replaces the preset's fields and returns the updated aggregate.
func (h *UpdatePresetCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePresetCommand,
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

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	preset, err := uow.PresetRepository().Get(ctx, cmd.PresetID())
	if err != nil {
		return nil, err
	}
	if err = preset.Update(cmd.Name(), cmd.Dimensions(), defaultWeight, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.PresetRepository().Update(ctx, preset); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return preset, nil
}
