package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrBuyLabelCommandIsNotConstructed = errors.New(
	"BuyLabelCommand must be created via NewBuyLabelCommand constructor",
)

// BuyLabelCommand represents a request to purchase a shipping label for a
// parcel. The destination is the recipient address the label is bought for.
// QuoteSelectedID optionally pins the rate quote to buy against; empty means
// use the shipment's stored selection, falling back to the cheapest rate.
// Refresh forces a fresh rate quote before purchasing.
type BuyLabelCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	destination     kernel.Address
	quoteSelectedID string
	refresh         bool

	guard guard.ConstructorGuard
}

// NewBuyLabelCommand creates a command to purchase a label for a shipment.
func NewBuyLabelCommand(
	shipmentID kernel.UUID,
	destination kernel.Address,
	quoteSelectedID string,
	refresh bool,
) (BuyLabelCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return BuyLabelCommand{}, err
	}
	if err := destination.Validate(); err != nil {
		return BuyLabelCommand{}, err
	}

	return BuyLabelCommand{
		shipmentID:      shipmentID,
		destination:     destination,
		quoteSelectedID: quoteSelectedID,
		refresh:         refresh,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BuyLabelCommand) Validate() error {
	return c.guard.Validate(ErrBuyLabelCommandIsNotConstructed)
}

// ShipmentID returns the shipment to buy a label for.
func (c BuyLabelCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Destination returns the recipient address.
func (c BuyLabelCommand) Destination() kernel.Address { return c.destination }

// QuoteSelectedID returns the pinned quote id, empty for the stored selection.
func (c BuyLabelCommand) QuoteSelectedID() string { return c.quoteSelectedID }

// Refresh reports whether rates must be re-fetched before purchasing.
func (c BuyLabelCommand) Refresh() bool { return c.refresh }
