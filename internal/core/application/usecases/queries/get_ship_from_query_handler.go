package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetShipFromQueryHandler retrieves the singleton ship-from record from the
// database. An absent record is not an error: the read model reports it as
// unconfigured so the admin surface can prompt for setup.
type GetShipFromQueryHandler struct {
	db *gorm.DB
}

// NewGetShipFromQueryHandler creates a handler for ship-from queries.
func NewGetShipFromQueryHandler(db *gorm.DB) GetShipFromQueryHandler {
	return GetShipFromQueryHandler{db: db}
}

// Handle executes the query.
func (h GetShipFromQueryHandler) Handle(
	ctx context.Context,
	query GetShipFromQuery,
) (ShipFromReadModel, error) {
	if err := query.Validate(); err != nil {
		return ShipFromReadModel{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			company,
			line1,
			line2,
			city,
			state,
			postal_code,
			country_code,
			phone,
			updated_at
		FROM ship_from_settings
		LIMIT 1
	`).Row()

	var (
		model                                 ShipFromReadModel
		name, company, line1, line2           string
		city, state, postalCode, country, tel string
		updatedAt                             sql.NullTime
	)
	err := row.Scan(
		&name, &company, &line1, &line2,
		&city, &state, &postalCode, &country, &tel,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipFromReadModel{}, nil
	}
	if err != nil {
		return ShipFromReadModel{}, err
	}

	address, err := kernel.NewAddress(name, company, line1, line2, city, state, postalCode, country, tel)
	if err != nil {
		return ShipFromReadModel{}, err
	}

	model.Configured = true
	model.Address = address
	if updatedAt.Valid {
		model.UpdatedAt = updatedAt.Time
	}
	return model, nil
}
