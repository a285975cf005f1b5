package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrRefreshLabelStatusCommandIsNotConstructed = errors.New(
	"RefreshLabelStatusCommand must be created via NewRefreshLabelStatusCommand constructor",
)

// RefreshLabelStatusCommand represents a request to re-poll the provider for
// a shipment whose purchase was accepted but whose label has not resolved.
type RefreshLabelStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshLabelStatusCommand creates a command to refresh a shipment's
// label status.
func NewRefreshLabelStatusCommand(shipmentID kernel.UUID) (RefreshLabelStatusCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return RefreshLabelStatusCommand{}, err
	}
	return RefreshLabelStatusCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshLabelStatusCommand) Validate() error {
	return c.guard.Validate(ErrRefreshLabelStatusCommandIsNotConstructed)
}

// ShipmentID returns the shipment whose status to refresh.
func (c RefreshLabelStatusCommand) ShipmentID() kernel.UUID { return c.shipmentID }
