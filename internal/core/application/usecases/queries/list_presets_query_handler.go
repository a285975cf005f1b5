package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPresetsQueryHandler retrieves the box preset catalog from the database.
type ListPresetsQueryHandler struct {
	db *gorm.DB
}

// NewListPresetsQueryHandler creates a handler for preset list queries.
func NewListPresetsQueryHandler(db *gorm.DB) ListPresetsQueryHandler {
	return ListPresetsQueryHandler{db: db}
}

// Handle executes the query, returning presets ordered by name.
func (h ListPresetsQueryHandler) Handle(
	ctx context.Context,
	query ListPresetsQuery,
) ([]PresetReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			length_in,
			width_in,
			height_in,
			default_weight_lb,
			created_at,
			updated_at
		FROM box_presets
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := make([]PresetReadModel, 0)

	for rows.Next() {
		var (
			row              PresetReadModel
			id               uuid.UUID
			length, wid, hei float64
			defaultWeight    sql.NullFloat64
		)

		if err = rows.Scan(
			&id,
			&row.Name,
			&length, &wid, &hei,
			&defaultWeight,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}

		row.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		row.Dimensions, err = kernel.NewDimensions(length, wid, hei)
		if err != nil {
			return nil, err
		}
		if defaultWeight.Valid {
			lb := defaultWeight.Float64
			row.DefaultWeightLb = &lb
		}

		presets = append(presets, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return presets, nil
}
