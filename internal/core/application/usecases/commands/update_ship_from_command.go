package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrUpdateShipFromCommandIsNotConstructed = errors.New(
	"UpdateShipFromCommand must be created via NewUpdateShipFromCommand constructor",
)

// UpdateShipFromCommand represents a full replacement of the singleton
// ship-from address. There is no partial merge: callers supply every field.
type UpdateShipFromCommand struct { //nolint:recvcheck //using for validation
	address kernel.Address

	guard guard.ConstructorGuard
}

// NewUpdateShipFromCommand creates a command to replace the ship-from address.
func NewUpdateShipFromCommand(address kernel.Address) (UpdateShipFromCommand, error) {
	if err := address.Validate(); err != nil {
		return UpdateShipFromCommand{}, err
	}
	return UpdateShipFromCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipFromCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipFromCommandIsNotConstructed)
}

// Address returns the complete replacement address.
func (c UpdateShipFromCommand) Address() kernel.Address { return c.address }
