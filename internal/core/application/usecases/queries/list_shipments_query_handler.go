package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListShipmentsQueryHandler retrieves an order's shipments from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern. The box
// preset table is joined so that a still-existing preset contributes its
// live dimensions while a deleted preset falls back to the snapshot stored
// on the shipment row.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewListShipmentsQueryHandler creates a handler for shipment list queries.
func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle executes the query. Shipments come back ordered by parcel index;
// the response total sums confirmed label costs over generated shipments.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.parcel_index,
			s.box_preset_id,
			s.box_preset_name,
			p.id IS NULL AND s.box_preset_id IS NOT NULL AS preset_deleted,
			COALESCE(p.length_in, s.effective_length_in),
			COALESCE(p.width_in, s.effective_width_in),
			COALESCE(p.height_in, s.effective_height_in),
			s.custom_length_in,
			s.custom_width_in,
			s.custom_height_in,
			s.weight_lb,
			s.label_state,
			s.provider_shipment_id,
			s.provider_label_id,
			s.carrier,
			s.service,
			s.tracking_number,
			s.label_url,
			s.label_cost_cents,
			s.label_cost_currency,
			s.quote_selected_id,
			s.error_message,
			s.created_at,
			s.purchased_at
		FROM shipments s
		LEFT JOIN box_presets p ON p.id = s.box_preset_id
		WHERE s.order_id = ?
		ORDER BY s.parcel_index
	`, query.OrderID().String()).Rows()
	if err != nil {
		return ListShipmentsQueryResponse{}, err
	}
	defer rows.Close()

	response := ListShipmentsQueryResponse{Shipments: make([]ShipmentReadModel, 0)}

	for rows.Next() {
		var (
			row                        ShipmentReadModel
			id                         uuid.UUID
			presetID                   uuid.NullUUID
			effLen, effWid, effHei     float64
			cusLen, cusWid, cusHei     sql.NullFloat64
			labelState                 int
			providerShipID, providerID string
			costCents                  sql.NullInt64
			costCurrency               sql.NullString
			purchasedAt                sql.NullTime
		)

		if err = rows.Scan(
			&id,
			&row.ParcelIndex,
			&presetID,
			&row.BoxPresetName,
			&row.PresetDeleted,
			&effLen, &effWid, &effHei,
			&cusLen, &cusWid, &cusHei,
			&row.WeightLb,
			&labelState,
			&providerShipID,
			&providerID,
			&row.Carrier,
			&row.Service,
			&row.TrackingNumber,
			&row.LabelURL,
			&costCents,
			&costCurrency,
			&row.QuoteSelectedID,
			&row.ErrorMessage,
			&row.CreatedAt,
			&purchasedAt,
		); err != nil {
			return ListShipmentsQueryResponse{}, err
		}

		row.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return ListShipmentsQueryResponse{}, err
		}
		if presetID.Valid {
			pid, pidErr := kernel.UUIDFromBytes(presetID.UUID[:])
			if pidErr != nil {
				return ListShipmentsQueryResponse{}, pidErr
			}
			row.BoxPresetID = &pid
		}

		row.EffectiveDims, err = kernel.NewDimensions(effLen, effWid, effHei)
		if err != nil {
			return ListShipmentsQueryResponse{}, err
		}
		if cusLen.Valid && cusWid.Valid && cusHei.Valid {
			dims, dimsErr := kernel.NewDimensions(cusLen.Float64, cusWid.Float64, cusHei.Float64)
			if dimsErr != nil {
				return ListShipmentsQueryResponse{}, dimsErr
			}
			row.CustomDims = &dims
		}

		state := shipment.LabelState(labelState)
		row.LabelState = state.String()
		row.NeedsStatusRefresh = state == shipment.Pending && providerShipID != "" && providerID == ""

		if costCents.Valid {
			cents := costCents.Int64
			row.LabelCostCents = &cents
			row.LabelCostCurrency = costCurrency.String
			if state == shipment.Generated {
				response.ActualLabelTotalCents += cents
			}
		}
		if purchasedAt.Valid {
			at := purchasedAt.Time
			row.PurchasedAt = &at
		}

		response.Shipments = append(response.Shipments, row)
	}
	if err = rows.Err(); err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	return response, nil
}
