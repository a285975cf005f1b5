package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreatePresetCommandIsNotConstructed = errors.New(
	"CreatePresetCommand must be created via NewCreatePresetCommand constructor",
)

// CreatePresetCommand represents a request to add a reusable box preset to
// the catalog.
type CreatePresetCommand struct { //nolint:recvcheck //using for validation
	name            string
	dimensions      kernel.Dimensions
	defaultWeightLb *float64

	guard guard.ConstructorGuard
}

// NewCreatePresetCommand creates a command to add a box preset.
func NewCreatePresetCommand(
	name string,
	dimensions kernel.Dimensions,
	defaultWeightLb *float64,
) (CreatePresetCommand, error) {
	if name == "" {
		return CreatePresetCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := dimensions.Validate(); err != nil {
		return CreatePresetCommand{}, err
	}
	if defaultWeightLb != nil && *defaultWeightLb <= 0 {
		return CreatePresetCommand{}, errs.NewValueIsInvalidError("defaultWeightLb")
	}

	cmd := CreatePresetCommand{
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
func (c CreatePresetCommand) Validate() error {
	return c.guard.Validate(ErrCreatePresetCommandIsNotConstructed)
}

// Name returns the preset name, unique per catalog.
func (c CreatePresetCommand) Name() string { return c.name }

// Dimensions returns the preset box dimensions in inches.
func (c CreatePresetCommand) Dimensions() kernel.Dimensions { return c.dimensions }

// DefaultWeightLb returns the optional default weight in pounds.
func (c CreatePresetCommand) DefaultWeightLb() *float64 { return c.defaultWeightLb }
