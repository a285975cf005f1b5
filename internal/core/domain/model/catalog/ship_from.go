package catalog

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// ErrShipFromIsNotConstructed is returned when a ShipFromSettings instance
// was not created through NewShipFromSettings or RestoreShipFromSettings.
var ErrShipFromIsNotConstructed = errors.New(
	"ShipFromSettings must be created via NewShipFromSettings or RestoreShipFromSettings")

// ShipFromSettings is the singleton ship-from address record used as the
// origin for every quote and label purchase. Exactly one live record exists;
// updates are full replacements, never partial merges at the storage layer.
// Callers supply all fields.
type ShipFromSettings struct {
	address   kernel.Address
	updatedAt time.Time

	isConstructed bool
}

// NewShipFromSettings creates the ship-from record from a validated address.
func NewShipFromSettings(address kernel.Address, now time.Time) (*ShipFromSettings, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	return &ShipFromSettings{
		address:       address,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreShipFromSettings reconstructs the record from persistence.
func RestoreShipFromSettings(address kernel.Address, updatedAt time.Time) (*ShipFromSettings, error) {
	return NewShipFromSettings(address, updatedAt)
}

// Validate ensures the record was properly constructed.
func (s *ShipFromSettings) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipFromIsNotConstructed
	}
	return nil
}

// Address returns the ship-from postal address.
func (s *ShipFromSettings) Address() kernel.Address { return s.address }

// UpdatedAt returns the last replacement timestamp.
func (s *ShipFromSettings) UpdatedAt() time.Time { return s.updatedAt }

// Replace swaps in a complete new address. There is no partial merge.
func (s *ShipFromSettings) Replace(address kernel.Address, now time.Time) error {
	if err := address.Validate(); err != nil {
		return err
	}
	s.address = address
	s.updatedAt = now
	return nil
}
