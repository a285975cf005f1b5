package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrConcurrentModification is returned when an optimistic version check
// fails during an update: the shipment row was changed by a concurrent
// writer between read and write. Callers should re-load and retry.
var ErrConcurrentModification = errors.New("shipment was modified concurrently")

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Updates apply an optimistic version check because dimension edits, purchase
// results, and reconciliation results can arrive concurrently.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// Returns ErrConcurrentModification if the stored version no longer
	// matches the aggregate's version.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllByOrder retrieves all shipments belonging to an order,
	// ordered by parcel index.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error)

	// CountByOrder returns the number of shipments an order already has.
	// Used to assign the next parcel index.
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error)

	// GetAllAwaitingStatusRefresh retrieves shipments whose purchase was
	// accepted by the provider but has not resolved yet: label state
	// pending with a provider shipment id and no label id.
	GetAllAwaitingStatusRefresh(ctx context.Context) ([]*shipment.Shipment, error)

	// Delete removes a shipment row. The caller must have verified the
	// label state permits deletion.
	Delete(ctx context.Context, id kernel.UUID) error
}
