package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipFromQueryIsNotConstructed = errors.New(
	"GetShipFromQuery must be created via NewGetShipFromQuery constructor",
)

// GetShipFromQuery retrieves the singleton ship-from address record.
type GetShipFromQuery struct {
	guard guard.ConstructorGuard
}

// NewGetShipFromQuery creates a query for the ship-from record.
func NewGetShipFromQuery() GetShipFromQuery {
	return GetShipFromQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetShipFromQuery) Validate() error {
	return q.guard.Validate(ErrGetShipFromQueryIsNotConstructed)
}

// ShipFromReadModel is the ship-from address read model. Configured reports
// whether a record has been saved yet; the zero Address means it has not.
type ShipFromReadModel struct {
	Configured bool
	Address    kernel.Address
	UpdatedAt  time.Time
}
