package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrDeletePresetCommandIsNotConstructed = errors.New(
	"DeletePresetCommand must be created via NewDeletePresetCommand constructor",
)

// DeletePresetCommand represents a request to remove a box preset from the
// catalog. Shipments referencing the preset keep their snapshotted
// dimensions and denormalized preset name.
type DeletePresetCommand struct { //nolint:recvcheck //using for validation
	presetID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePresetCommand creates a command to delete a preset.
func NewDeletePresetCommand(presetID kernel.UUID) (DeletePresetCommand, error) {
	if err := presetID.Validate(); err != nil {
		return DeletePresetCommand{}, err
	}
	return DeletePresetCommand{
		presetID: presetID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePresetCommand) Validate() error {
	return c.guard.Validate(ErrDeletePresetCommandIsNotConstructed)
}

// PresetID returns the preset to delete.
func (c DeletePresetCommand) PresetID() kernel.UUID { return c.presetID }
