package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrUpdateShipmentCommandIsNotConstructed = errors.New(
		"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
	)
	ErrDimensionEditIsAmbiguous = errors.New(
		"a single update may switch to a preset or to custom dimensions, not both",
	)
)

// UpdateShipmentCommand represents a partial edit of a shipment: its
// dimension source, weight, or selected rate quote. Unset fields are left
// untouched. Switching to custom dimensions without explicit values reuses
// the dimensions the shipment last had entered as custom.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	boxPresetID   *kernel.UUID
	useCustomDims bool
	customDims    *kernel.Dimensions

	weightLb        *float64
	quoteSelectedID *string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand creates a partial shipment edit. Pass nil for
// fields that should not change. useCustomDims switches the shipment to
// custom dimensions; customDims may then be nil to reuse the previously
// entered custom values.
func NewUpdateShipmentCommand(
	shipmentID kernel.UUID,
	boxPresetID *kernel.UUID,
	useCustomDims bool,
	customDims *kernel.Dimensions,
	weightLb *float64,
	quoteSelectedID *string,
) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := shipmentID.Validate(); err != nil {
		return UpdateShipmentCommand{}, err
	}
	cmd.shipmentID = shipmentID

	if err := cmd.setDimensionEdit(boxPresetID, useCustomDims, customDims); err != nil {
		return UpdateShipmentCommand{}, err
	}
	if err := cmd.setWeight(weightLb); err != nil {
		return UpdateShipmentCommand{}, err
	}
	if err := cmd.setQuoteSelected(quoteSelectedID); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to edit.
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// BoxPresetID returns the preset to switch to, nil when not switching.
func (c UpdateShipmentCommand) BoxPresetID() *kernel.UUID { return c.boxPresetID }

// UseCustomDims reports whether the edit switches to custom dimensions.
func (c UpdateShipmentCommand) UseCustomDims() bool { return c.useCustomDims }

// CustomDims returns the explicit custom dimensions, nil to reuse retained ones.
func (c UpdateShipmentCommand) CustomDims() *kernel.Dimensions { return c.customDims }

// WeightLb returns the new weight in pounds, nil when unchanged.
func (c UpdateShipmentCommand) WeightLb() *float64 { return c.weightLb }

// QuoteSelectedID returns the new selected quote id, nil when unchanged.
func (c UpdateShipmentCommand) QuoteSelectedID() *string { return c.quoteSelectedID }

// ChangesPhysicalAttributes reports whether the edit touches dimensions or
// weight. Physical edits invalidate cached quotes and are rejected once a
// label has been generated.
func (c UpdateShipmentCommand) ChangesPhysicalAttributes() bool {
	return c.boxPresetID != nil || c.useCustomDims || c.weightLb != nil
}

func (c *UpdateShipmentCommand) setDimensionEdit(
	boxPresetID *kernel.UUID,
	useCustomDims bool,
	customDims *kernel.Dimensions,
) error {
	if customDims != nil {
		useCustomDims = true
	}
	if boxPresetID != nil && useCustomDims {
		return ErrDimensionEditIsAmbiguous
	}
	if boxPresetID != nil {
		if err := boxPresetID.Validate(); err != nil {
			return err
		}
		id := *boxPresetID
		c.boxPresetID = &id
		return nil
	}
	c.useCustomDims = useCustomDims
	if customDims != nil {
		if err := customDims.Validate(); err != nil {
			return err
		}
		dims := *customDims
		c.customDims = &dims
	}
	return nil
}

func (c *UpdateShipmentCommand) setWeight(weightLb *float64) error {
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

func (c *UpdateShipmentCommand) setQuoteSelected(quoteSelectedID *string) error {
	if quoteSelectedID == nil {
		return nil
	}
	if *quoteSelectedID == "" {
		return errs.NewValueIsRequiredError("quoteSelectedId")
	}
	id := *quoteSelectedID
	c.quoteSelectedID = &id
	return nil
}
