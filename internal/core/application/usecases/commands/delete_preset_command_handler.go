package commands

import (
	"context"
)

// DeletePresetCommandHandler handles preset deletion. Deletion is
// unconditional: shipments hold only weak references, so no referential
// cleanup happens here. Their snapshotted dimensions become the effective
// fallback once the preset is gone.
type DeletePresetCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewDeletePresetCommandHandler creates a handler for preset deletion.
func NewDeletePresetCommandHandler(uowFactory CatalogUoWFactory) DeletePresetCommandHandler {
	return DeletePresetCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the preset.
func (h *DeletePresetCommandHandler) Handle(ctx context.Context, cmd DeletePresetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Existence check keeps not-found reporting consistent with updates.
	preset, err := uow.PresetRepository().Get(ctx, cmd.PresetID())
	if err != nil {
		return err
	}

	if err = uow.PresetRepository().Delete(ctx, preset.ID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
