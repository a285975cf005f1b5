// Package shipfromrepo provides persistence for the singleton ship-from
// address record.
package shipfromrepo

import (
	"time"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
)

// singletonID is the fixed primary key of the only ship-from row.
const singletonID = 1

// ShipFromDTO represents the database structure for the ship-from record.
// Exactly one row exists; saves are full replacements keyed on a constant id.
type ShipFromDTO struct {
	ID          int `gorm:"primaryKey"`
	Name        string
	Company     string
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
	Phone       string
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the ship-from record.
func (ShipFromDTO) TableName() string {
	return "ship_from_settings"
}

func fromDomain(s *catalog.ShipFromSettings) ShipFromDTO {
	addr := s.Address()
	return ShipFromDTO{
		ID:          singletonID,
		Name:        addr.Name(),
		Company:     addr.Company(),
		Line1:       addr.Line1(),
		Line2:       addr.Line2(),
		City:        addr.City(),
		State:       addr.State(),
		PostalCode:  addr.PostalCode(),
		CountryCode: addr.CountryCode(),
		Phone:       addr.Phone(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func toDomain(dto ShipFromDTO) (*catalog.ShipFromSettings, error) {
	addr, err := kernel.NewAddress(
		dto.Name, dto.Company, dto.Line1, dto.Line2,
		dto.City, dto.State, dto.PostalCode, dto.CountryCode, dto.Phone,
	)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreShipFromSettings(addr, dto.UpdatedAt)
}
