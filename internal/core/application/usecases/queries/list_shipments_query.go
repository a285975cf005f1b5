// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery retrieves all shipments belonging to an order, ordered
// by parcel index, together with the order's running label cost total.
type ListShipmentsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery creates a query for an order's shipments.
func NewListShipmentsQuery(orderID kernel.UUID) (ListShipmentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListShipmentsQuery{}, err
	}
	return ListShipmentsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

// OrderID returns the order whose shipments to list.
func (q ListShipmentsQuery) OrderID() kernel.UUID { return q.orderID }

// ShipmentReadModel is one parcel row in the shipment list. EffectiveDims
// resolves to the referenced preset's live dimensions when the preset still
// exists, falling back to the dimensions snapshotted on the shipment.
type ShipmentReadModel struct {
	ID                 kernel.UUID
	ParcelIndex        int
	BoxPresetID        *kernel.UUID
	BoxPresetName      string
	PresetDeleted      bool
	EffectiveDims      kernel.Dimensions
	CustomDims         *kernel.Dimensions
	WeightLb           float64
	LabelState         string
	Carrier            string
	Service            string
	TrackingNumber     string
	LabelURL           string
	LabelCostCents     *int64
	LabelCostCurrency  string
	QuoteSelectedID    string
	ErrorMessage       string
	NeedsStatusRefresh bool
	CreatedAt          time.Time
	PurchasedAt        *time.Time
}

// ListShipmentsQueryResponse is the full shipment list for an order plus the
// actual label total: the sum of confirmed label costs over generated
// shipments only, never an estimate.
type ListShipmentsQueryResponse struct {
	Shipments             []ShipmentReadModel
	ActualLabelTotalCents int64
}
