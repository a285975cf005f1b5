package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrDimensionSourceIsAmbiguous = errors.New(
		"exactly one of boxPresetId or custom dimensions must be provided",
	)
)

// CreateShipmentCommand represents a request to add a physical parcel to an
// order. The dimension source is either a box preset reference or a custom
// size; exactly one must be provided. Weight is optional when the preset
// carries a default weight.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	boxPresetID *kernel.UUID
	customDims  *kernel.Dimensions
	weightLb    *float64

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to add a parcel to an order.
// Validates the order id and that exactly one dimension source is given.
func NewCreateShipmentCommand(
	orderID kernel.UUID,
	boxPresetID *kernel.UUID,
	customDims *kernel.Dimensions,
	weightLb *float64,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CreateShipmentCommand{}, err
	}
	if err := cmd.setDimensionSource(boxPresetID, customDims); err != nil {
		return CreateShipmentCommand{}, err
	}
	if err := cmd.setWeight(weightLb); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c CreateShipmentCommand) OrderID() kernel.UUID { return c.orderID }

// BoxPresetID returns the preset reference, nil for custom dimensions.
func (c CreateShipmentCommand) BoxPresetID() *kernel.UUID { return c.boxPresetID }

// CustomDims returns the custom dimensions, nil for preset-backed parcels.
func (c CreateShipmentCommand) CustomDims() *kernel.Dimensions { return c.customDims }

// WeightLb returns the requested weight in pounds, nil to use the preset default.
func (c CreateShipmentCommand) WeightLb() *float64 { return c.weightLb }

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setDimensionSource(boxPresetID *kernel.UUID, customDims *kernel.Dimensions) error {
	if (boxPresetID == nil) == (customDims == nil) {
		return ErrDimensionSourceIsAmbiguous
	}
	if boxPresetID != nil {
		if err := boxPresetID.Validate(); err != nil {
			return err
		}
		id := *boxPresetID
		c.boxPresetID = &id
		return nil
	}
	if err := customDims.Validate(); err != nil {
		return err
	}
	dims := *customDims
	c.customDims = &dims
	return nil
}

func (c *CreateShipmentCommand) setWeight(weightLb *float64) error {
	if weightLb == nil {
		return nil
	}
	if *weightLb <= 0 {
		return errs.NewValueIsInvalidError("weightLb")
	}
	w := *weightLb
	c.weightLb = &w
	return nil
}
