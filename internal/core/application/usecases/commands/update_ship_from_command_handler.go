package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/pkg/errs"
)

// UpdateShipFromCommandHandler handles full replacement of the singleton
// ship-from address, creating the record on first save.
type UpdateShipFromCommandHandler struct {
	uowFactory ShipFromUoWFactory
}

// NewUpdateShipFromCommandHandler creates a handler for ship-from updates.
func NewUpdateShipFromCommandHandler(uowFactory ShipFromUoWFactory) UpdateShipFromCommandHandler {
	return UpdateShipFromCommandHandler{uowFactory: uowFactory}
}

// Handle replaces the ship-from record and returns it.
func (h *UpdateShipFromCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipFromCommand,
) (*catalog.ShipFromSettings, error) {
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

	now := time.Now().UTC()

	settings, err := uow.ShipFromRepository().Get(ctx)
	switch {
	case err == nil:
		if err = settings.Replace(cmd.Address(), now); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		settings, err = catalog.NewShipFromSettings(cmd.Address(), now)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err = uow.ShipFromRepository().Save(ctx, settings); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return settings, nil
}
