package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdatePresetCommandIsNotConstructed = errors.New(
	"UpdatePresetCommand must be created via NewUpdatePresetCommand constructor",
)

// UpdatePresetCommand represents a full replacement of a box preset's
// fields. Editing a preset only affects future shipments: existing shipments
// keep the dimensions they snapshotted at selection time.
type UpdatePresetCommand struct { //nolint:recvcheck //using for validation
	presetID        kernel.UUID
	name            string
	dimensions      kernel.Dimensions
	defaultWeightLb *float64

	guard guard.ConstructorGuard
}

// NewUpdatePresetCommand creates a command to replace a preset's fields.
func NewUpdatePresetCommand(
	presetID kernel.UUID,
	name string,
	dimensions kernel.Dimensions,
	defaultWeightLb *float64,
) (UpdatePresetCommand, error) {
	if err := presetID.Validate(); err != nil {
		return UpdatePresetCommand{}, err
	}
	if name == "" {
		return UpdatePresetCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := dimensions.Validate(); err != nil {
		return UpdatePresetCommand{}, err
	}
	if defaultWeightLb != nil && *defaultWeightLb <= 0 {
		return UpdatePresetCommand{}, errs.NewValueIsInvalidError("defaultWeightLb")
	}

	cmd := UpdatePresetCommand{
		presetID:   presetID,
		name:       name,
		dimensions: dimensions,
		guard:      guard.NewConstructorGuard(),
	}
	if defaultWeightLb != nil {
		w := *defaultWeightLb
		cmd.defaultWeightLb = &w
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePresetCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePresetCommandIsNotConstructed)
}

// PresetID returns the preset to update.
func (c UpdatePresetCommand) PresetID() kernel.UUID { return c.presetID }

// Name returns the new preset name.
func (c UpdatePresetCommand) Name() string { return c.name }

// Dimensions returns the new box dimensions in inches.
func (c UpdatePresetCommand) Dimensions() kernel.Dimensions { return c.dimensions }

// DefaultWeightLb returns the new optional default weight in pounds.
func (c UpdatePresetCommand) DefaultWeightLb() *float64 { return c.defaultWeightLb }
