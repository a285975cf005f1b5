package commands

import (
	"context"
)

// DeleteShipmentCommandHandler handles shipment deletion. A shipment whose
// label has been generated is never deleted: the label was paid for and the
// record must stay auditable.
type DeleteShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	invalidator QuoteInvalidator
}

// NewDeleteShipmentCommandHandler creates a handler for shipment deletion.
func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	invalidator QuoteInvalidator,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory, invalidator: invalidator}
}

// Handle deletes the shipment after checking its label state allows it.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if err = s.LabelState().ValidateDelete(); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Delete(ctx, s.ID()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(s.ID())
	return nil
}
