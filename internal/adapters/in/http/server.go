// Package http exposes the shipping engine over a JSON admin API.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
// Every mutating shipment endpoint answers with the refreshed parcel list
// for the order, so the caller never needs a follow-up read.
type Server struct {
	// Command handlers
	createShipmentHandler commands.CreateShipmentCommandHandler
	updateShipmentHandler commands.UpdateShipmentCommandHandler
	deleteShipmentHandler commands.DeleteShipmentCommandHandler
	buyLabelHandler       commands.BuyLabelCommandHandler
	refreshLabelHandler   commands.RefreshLabelStatusCommandHandler
	createPresetHandler   commands.CreatePresetCommandHandler
	updatePresetHandler   commands.UpdatePresetCommandHandler
	deletePresetHandler   commands.DeletePresetCommandHandler
	updateShipFromHandler commands.UpdateShipFromCommandHandler

	// Query handlers
	listShipmentsHandler queries.ListShipmentsQueryHandler
	quotesHandler        queries.GetShipmentQuotesQueryHandler
	listPresetsHandler   queries.ListPresetsQueryHandler
	getShipFromHandler   queries.GetShipFromQueryHandler

	logger *slog.Logger
}

// ServerParams bundles the handlers the server routes to.
type ServerParams struct {
	CreateShipmentHandler commands.CreateShipmentCommandHandler
	UpdateShipmentHandler commands.UpdateShipmentCommandHandler
	DeleteShipmentHandler commands.DeleteShipmentCommandHandler
	BuyLabelHandler       commands.BuyLabelCommandHandler
	RefreshLabelHandler   commands.RefreshLabelStatusCommandHandler
	CreatePresetHandler   commands.CreatePresetCommandHandler
	UpdatePresetHandler   commands.UpdatePresetCommandHandler
	DeletePresetHandler   commands.DeletePresetCommandHandler
	UpdateShipFromHandler commands.UpdateShipFromCommandHandler

	ListShipmentsHandler queries.ListShipmentsQueryHandler
	QuotesHandler        queries.GetShipmentQuotesQueryHandler
	ListPresetsHandler   queries.ListPresetsQueryHandler
	GetShipFromHandler   queries.GetShipFromQueryHandler

	Logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(params ServerParams) *Server {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createShipmentHandler: params.CreateShipmentHandler,
		updateShipmentHandler: params.UpdateShipmentHandler,
		deleteShipmentHandler: params.DeleteShipmentHandler,
		buyLabelHandler:       params.BuyLabelHandler,
		refreshLabelHandler:   params.RefreshLabelHandler,
		createPresetHandler:   params.CreatePresetHandler,
		updatePresetHandler:   params.UpdatePresetHandler,
		deletePresetHandler:   params.DeletePresetHandler,
		updateShipFromHandler: params.UpdateShipFromHandler,
		listShipmentsHandler:  params.ListShipmentsHandler,
		quotesHandler:         params.QuotesHandler,
		listPresetsHandler:    params.ListPresetsHandler,
		getShipFromHandler:    params.GetShipFromHandler,
		logger:                logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the admin API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders/:orderId/shipments", s.ListShipments)
	api.POST("/orders/:orderId/shipments", s.CreateShipment)
	api.PATCH("/orders/:orderId/shipments/:shipmentId", s.UpdateShipment)
	api.DELETE("/orders/:orderId/shipments/:shipmentId", s.DeleteShipment)
	api.POST("/orders/:orderId/shipments/:shipmentId/quotes", s.GetShipmentQuotes)
	api.POST("/orders/:orderId/shipments/:shipmentId/label", s.BuyLabel)
	api.POST("/orders/:orderId/shipments/:shipmentId/label/refresh", s.RefreshLabelStatus)

	api.POST("/quotes", s.GetAdHocQuotes)

	api.GET("/presets", s.ListPresets)
	api.POST("/presets", s.CreatePreset)
	api.PUT("/presets/:presetId", s.UpdatePreset)
	api.DELETE("/presets/:presetId", s.DeletePreset)

	api.GET("/ship-from", s.GetShipFrom)
	api.PUT("/ship-from", s.UpdateShipFrom)
}

// ListShipments handles GET /api/v1/orders/{orderId}/shipments.
func (s *Server) ListShipments(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	list, err := s.shipmentList(ctx, orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// CreateShipment handles POST /api/v1/orders/{orderId}/shipments.
// Answers 201 with the refreshed parcel list.
func (s *Server) CreateShipment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	var req CreateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	presetID, err := optionalUUID(req.BoxPresetID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid box preset id")
	}
	customDims, err := optionalDimensions(req.CustomDimensions)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(orderID, presetID, customDims, req.WeightLb)
	if err != nil {
		return respondError(ctx, err)
	}
	if _, err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithList(ctx, http.StatusCreated, orderID)
}

// UpdateShipment handles PATCH /api/v1/orders/{orderId}/shipments/{shipmentId}.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req UpdateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	presetID, err := optionalUUID(req.BoxPresetID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid box preset id")
	}
	customDims, err := optionalDimensions(req.CustomDimensions)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipmentCommand(
		shipmentID, presetID, req.UseCustomDimensions, customDims, req.WeightLb, req.QuoteSelectedID)
	if err != nil {
		return respondError(ctx, err)
	}
	if _, err = s.updateShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithList(ctx, http.StatusOK, orderID)
}

// DeleteShipment handles DELETE /api/v1/orders/{orderId}/shipments/{shipmentId}.
// A shipment with a generated label is refused with 409.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithList(ctx, http.StatusOK, orderID)
}

// GetShipmentQuotes handles POST /api/v1/orders/{orderId}/shipments/{shipmentId}/quotes.
// POST because the destination address travels in the body.
func (s *Server) GetShipmentQuotes(ctx echo.Context) error {
	_, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req ShipmentQuotesRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	destination, err := req.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetShipmentQuotesQuery(shipmentID, destination, req.Refresh)
	if err != nil {
		return respondError(ctx, err)
	}
	res, err := s.quotesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quotesResponseFromQuery(res))
}

// GetAdHocQuotes handles POST /api/v1/quotes: rates for a parcel that is not
// a persisted shipment.
func (s *Server) GetAdHocQuotes(ctx echo.Context) error {
	var req AdHocQuotesRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	dims, err := req.Dimensions.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	weight, err := kernel.NewWeight(req.WeightLb)
	if err != nil {
		return respondError(ctx, err)
	}
	destination, err := req.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAdHocQuotesQuery(dims, weight, destination)
	if err != nil {
		return respondError(ctx, err)
	}
	res, err := s.quotesHandler.HandleAdHoc(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quotesResponseFromQuery(res))
}

// BuyLabel handles POST /api/v1/orders/{orderId}/shipments/{shipmentId}/label.
// A definitive provider rejection answers 422 with the refreshed list: the
// failed state was persisted and the row carries the rejection detail.
func (s *Server) BuyLabel(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req BuyLabelRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	destination, err := req.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewBuyLabelCommand(shipmentID, destination, req.QuoteID, req.Refresh)
	if err != nil {
		return respondError(ctx, err)
	}

	_, err = s.buyLabelHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return s.respondWithList(ctx, http.StatusOK, orderID)
	case errors.Is(err, errs.ErrProviderRejected):
		return s.respondWithList(ctx, http.StatusUnprocessableEntity, orderID)
	default:
		return respondError(ctx, err)
	}
}

// RefreshLabelStatus handles POST /api/v1/orders/{orderId}/shipments/{shipmentId}/label/refresh.
func (s *Server) RefreshLabelStatus(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRefreshLabelStatusCommand(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	_, err = s.refreshLabelHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return s.respondWithList(ctx, http.StatusOK, orderID)
	case errors.Is(err, errs.ErrProviderRejected):
		return s.respondWithList(ctx, http.StatusUnprocessableEntity, orderID)
	default:
		return respondError(ctx, err)
	}
}

// ListPresets handles GET /api/v1/presets.
func (s *Server) ListPresets(ctx echo.Context) error {
	rows, err := s.listPresetsHandler.Handle(ctx.Request().Context(), queries.NewListPresetsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Preset, len(rows))
	for i, row := range rows {
		response[i] = presetFromReadModel(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreatePreset handles POST /api/v1/presets.
func (s *Server) CreatePreset(ctx echo.Context) error {
	var req PresetRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	dims, err := req.Dimensions.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreatePresetCommand(req.Name, dims, req.DefaultWeightLb)
	if err != nil {
		return respondError(ctx, err)
	}
	preset, err := s.createPresetHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, presetFromDomain(preset))
}

// UpdatePreset handles PUT /api/v1/presets/{presetId}. A full replacement;
// existing shipments keep their snapshotted dimensions.
func (s *Server) UpdatePreset(ctx echo.Context) error {
	presetID, err := kernel.UUIDFromString(ctx.Param("presetId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid preset id")
	}

	var req PresetRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	dims, err := req.Dimensions.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdatePresetCommand(presetID, req.Name, dims, req.DefaultWeightLb)
	if err != nil {
		return respondError(ctx, err)
	}
	preset, err := s.updatePresetHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, presetFromDomain(preset))
}

// DeletePreset handles DELETE /api/v1/presets/{presetId}. Shipments that
// reference the preset survive on their snapshotted dimensions.
func (s *Server) DeletePreset(ctx echo.Context) error {
	presetID, err := kernel.UUIDFromString(ctx.Param("presetId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid preset id")
	}

	cmd, err := commands.NewDeletePresetCommand(presetID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.deletePresetHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipFrom handles GET /api/v1/ship-from. Answers 200 with
// configured=false when no record has been saved yet.
func (s *Server) GetShipFrom(ctx echo.Context) error {
	res, err := s.getShipFromHandler.Handle(ctx.Request().Context(), queries.NewGetShipFromQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, shipFromFromReadModel(res))
}

// UpdateShipFrom handles PUT /api/v1/ship-from: full replacement of the
// singleton origin address.
func (s *Server) UpdateShipFrom(ctx echo.Context) error {
	var req Address
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	address, err := req.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipFromCommand(address)
	if err != nil {
		return respondError(ctx, err)
	}
	settings, err := s.updateShipFromHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	addr := addressFromDomain(settings.Address())
	at := settings.UpdatedAt()
	return ctx.JSON(http.StatusOK, ShipFrom{Configured: true, Address: &addr, UpdatedAt: &at})
}

// respondWithList answers a mutating shipment call with the order's
// refreshed parcel list.
func (s *Server) respondWithList(ctx echo.Context, status int, orderID kernel.UUID) error {
	list, err := s.shipmentList(ctx, orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(status, list)
}

func (s *Server) shipmentList(ctx echo.Context, orderID kernel.UUID) (ShipmentList, error) {
	query, err := queries.NewListShipmentsQuery(orderID)
	if err != nil {
		return ShipmentList{}, err
	}
	res, err := s.listShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ShipmentList{}, err
	}
	return shipmentListFromQuery(res), nil
}

func orderAndShipmentIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid order id")
	}
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid shipment id")
	}
	return orderID, shipmentID, nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalDimensions(raw *Dimensions) (*kernel.Dimensions, error) {
	if raw == nil {
		return nil, nil
	}
	dims, err := raw.toDomain()
	if err != nil {
		return nil, err
	}
	return &dims, nil
}

func presetFromDomain(preset *catalog.BoxPreset) Preset {
	p := Preset{
		ID:         preset.ID().String(),
		Name:       preset.Name(),
		Dimensions: dimensionsFromDomain(preset.Dimensions()),
		CreatedAt:  preset.CreatedAt(),
		UpdatedAt:  preset.UpdatedAt(),
	}
	if w := preset.DefaultWeight(); w != nil {
		lb := w.Pounds()
		p.DefaultWeightLb = &lb
	}
	return p
}
