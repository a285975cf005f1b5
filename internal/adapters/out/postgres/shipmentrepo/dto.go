// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, handling the conversion between domain entities and
// database representations.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The effective dimensions are the snapshot frozen at the last
// dimension edit; the custom dimensions are retained separately so switching
// back from a preset restores them. Version backs the optimistic lock.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ParcelIndex int

	BoxPresetID   *uuid.UUID `gorm:"type:uuid;index"`
	BoxPresetName string

	EffectiveLengthIn float64
	EffectiveWidthIn  float64
	EffectiveHeightIn float64
	CustomLengthIn    *float64
	CustomWidthIn     *float64
	CustomHeightIn    *float64

	WeightLb float64

	LabelState         int `gorm:"index"`
	ProviderShipmentID string
	ProviderLabelID    string
	Carrier            string
	Service            string
	TrackingNumber     string
	LabelURL           string
	LabelCostCents     *int64
	LabelCostCurrency  string
	QuoteSelectedID    string
	ErrorMessage       string

	CreatedAt   time.Time
	PurchasedAt *time.Time
	UpdatedAt   time.Time

	Version int64
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                 s.ID().Bytes(),
		OrderID:            s.OrderID().Bytes(),
		ParcelIndex:        s.ParcelIndex(),
		BoxPresetName:      s.BoxPresetName(),
		EffectiveLengthIn:  s.EffectiveDimensions().LengthIn(),
		EffectiveWidthIn:   s.EffectiveDimensions().WidthIn(),
		EffectiveHeightIn:  s.EffectiveDimensions().HeightIn(),
		WeightLb:           s.Weight().Pounds(),
		LabelState:         int(s.LabelState()),
		ProviderShipmentID: s.ProviderShipmentID(),
		ProviderLabelID:    s.ProviderLabelID(),
		Carrier:            s.Carrier(),
		Service:            s.Service(),
		TrackingNumber:     s.TrackingNumber(),
		LabelURL:           s.LabelURL(),
		QuoteSelectedID:    s.QuoteSelectedID(),
		ErrorMessage:       s.ErrorMessage(),
		CreatedAt:          s.CreatedAt(),
		PurchasedAt:        s.PurchasedAt(),
		UpdatedAt:          s.UpdatedAt(),
		Version:            s.Version(),
	}

	if presetID := s.BoxPresetID(); presetID != nil {
		raw := presetID.Bytes()
		dto.BoxPresetID = &raw
	}
	if dims := s.CustomDimensions(); dims != nil {
		length, wid, hei := dims.LengthIn(), dims.WidthIn(), dims.HeightIn()
		dto.CustomLengthIn = &length
		dto.CustomWidthIn = &wid
		dto.CustomHeightIn = &hei
	}
	if cost := s.LabelCost(); cost != nil {
		cents := cost.AmountCents()
		dto.LabelCostCents = &cents
		dto.LabelCostCurrency = cost.Currency()
	}

	return dto
}

// toDomain converts a database DTO to a shipment domain aggregate,
// re-checking the aggregate invariants through RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var presetID *kernel.UUID
	if dto.BoxPresetID != nil {
		pid, presetErr := kernel.UUIDFromBytes((*dto.BoxPresetID)[:])
		if presetErr != nil {
			return nil, presetErr
		}
		presetID = &pid
	}

	effectiveDims, err := kernel.NewDimensions(dto.EffectiveLengthIn, dto.EffectiveWidthIn, dto.EffectiveHeightIn)
	if err != nil {
		return nil, err
	}

	var customDims *kernel.Dimensions
	if dto.CustomLengthIn != nil && dto.CustomWidthIn != nil && dto.CustomHeightIn != nil {
		dims, dimsErr := kernel.NewDimensions(*dto.CustomLengthIn, *dto.CustomWidthIn, *dto.CustomHeightIn)
		if dimsErr != nil {
			return nil, dimsErr
		}
		customDims = &dims
	}

	weight, err := kernel.NewWeight(dto.WeightLb)
	if err != nil {
		return nil, err
	}

	var labelCost *kernel.Money
	if dto.LabelCostCents != nil {
		cost, costErr := kernel.NewMoney(*dto.LabelCostCents, dto.LabelCostCurrency)
		if costErr != nil {
			return nil, costErr
		}
		labelCost = &cost
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                 id,
		OrderID:            orderID,
		ParcelIndex:        dto.ParcelIndex,
		BoxPresetID:        presetID,
		BoxPresetName:      dto.BoxPresetName,
		EffectiveDims:      effectiveDims,
		CustomDims:         customDims,
		Weight:             weight,
		LabelState:         shipment.LabelState(dto.LabelState),
		ProviderShipmentID: dto.ProviderShipmentID,
		ProviderLabelID:    dto.ProviderLabelID,
		Carrier:            dto.Carrier,
		Service:            dto.Service,
		TrackingNumber:     dto.TrackingNumber,
		LabelURL:           dto.LabelURL,
		LabelCost:          labelCost,
		QuoteSelectedID:    dto.QuoteSelectedID,
		ErrorMessage:       dto.ErrorMessage,
		CreatedAt:          dto.CreatedAt,
		PurchasedAt:        dto.PurchasedAt,
		UpdatedAt:          dto.UpdatedAt,
		Version:            dto.Version,
	})
}
