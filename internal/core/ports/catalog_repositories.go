package ports

import (
	"context"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
)

// PresetRepository defines the persistence contract for box presets.
// Deletion is unconditional at the catalog level: shipments hold weak
// references with denormalized display fields, so no referential cleanup
// is required here.
type PresetRepository interface {
	// Add persists a new preset. Preset names are unique per catalog.
	Add(ctx context.Context, aggregate *catalog.BoxPreset) error

	// Update persists changes to an existing preset.
	Update(ctx context.Context, aggregate *catalog.BoxPreset) error

	// Get retrieves a preset by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*catalog.BoxPreset, error)

	// GetAll retrieves all presets ordered by name.
	GetAll(ctx context.Context) ([]*catalog.BoxPreset, error)

	// Delete removes a preset.
	Delete(ctx context.Context, id kernel.UUID) error
}

// ShipFromRepository defines the persistence contract for the singleton
// ship-from address record. Save is a full replacement.
type ShipFromRepository interface {
	// Get retrieves the live ship-from record.
	Get(ctx context.Context) (*catalog.ShipFromSettings, error)

	// Save replaces the live ship-from record, creating it if absent.
	Save(ctx context.Context, aggregate *catalog.ShipFromSettings) error
}
