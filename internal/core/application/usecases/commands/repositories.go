// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PresetRepoFactory provides access to the preset repository within a transaction.
	PresetRepoFactory interface {
		PresetRepository() ports.PresetRepository
	}

	// ShipFromRepoFactory provides access to the ship-from repository within a transaction.
	ShipFromRepoFactory interface {
		ShipFromRepository() ports.ShipFromRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// CatalogUoW manages transactions for preset-only operations.
	CatalogUoW interface {
		TxManager
		PresetRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// ShipFromUoW manages transactions for ship-from operations.
	ShipFromUoW interface {
		TxManager
		ShipFromRepoFactory
	}

	// ShipFromUoWFactory creates new ship-from unit of work instances.
	ShipFromUoWFactory interface {
		Create() ShipFromUoW
	}

	// UoW manages transactions across shipment, preset, and ship-from
	// aggregates. Used by commands that coordinate changes between multiple
	// aggregate types, e.g. creating a preset-backed shipment or purchasing
	// a label (which reads ship-from and writes the shipment).
	UoW interface {
		TxManager
		ShipmentRepoFactory
		PresetRepoFactory
		ShipFromRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
