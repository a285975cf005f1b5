package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrListPresetsQueryIsNotConstructed = errors.New(
	"ListPresetsQuery must be created via NewListPresetsQuery constructor",
)

// ListPresetsQuery retrieves the full box preset catalog ordered by name.
type ListPresetsQuery struct {
	guard guard.ConstructorGuard
}

// NewListPresetsQuery creates a query to retrieve all box presets.
func NewListPresetsQuery() ListPresetsQuery {
	return ListPresetsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListPresetsQuery) Validate() error {
	return q.guard.Validate(ErrListPresetsQueryIsNotConstructed)
}

// PresetReadModel is one box preset row in the catalog list.
type PresetReadModel struct {
	ID              kernel.UUID
	Name            string
	Dimensions      kernel.Dimensions
	DefaultWeightLb *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
