package cmd

import (
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/easyship"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/quoting"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
	"shipping/internal/pkg/keymutex"

	"gorm.io/gorm"
)

// CompositionRoot wires the application together: one gateway, one quote
// cache, and one purchase lock instance shared by every handler that needs
// them. Purchase and refresh handlers in particular must see the same locks,
// or a manual buy could race the reconciliation job.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	gateway    ports.CarrierGateway
	quoteCache *quoting.QuoteCache
	locks      *keymutex.KeyMutex
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	gateway := easyship.New(easyship.Config{
		APIKey:  configs.EasyshipAPIKey,
		BaseURL: configs.EasyshipBaseURL,
		Timeout: configs.EasyshipTimeout,
		UseMock: configs.EasyshipUseMock,
	}, logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:    gateway,
		quoteCache: quoting.NewQuoteCache(gateway, configs.QuoteCacheTTL),
		locks:      keymutex.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentCommandHandler(f, c.quoteCache)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteShipmentCommandHandler(f, c.quoteCache)
}

func (c *CompositionRoot) CreateBuyLabelCommandHandler() commands.BuyLabelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBuyLabelCommandHandler(f, c.quoteCache, c.gateway, c.locks)
}

func (c *CompositionRoot) CreateRefreshLabelStatusCommandHandler() commands.RefreshLabelStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshLabelStatusCommandHandler(f, c.gateway, c.locks)
}

func (c *CompositionRoot) CreateCreatePresetCommandHandler() commands.CreatePresetCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePresetCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePresetCommandHandler() commands.UpdatePresetCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePresetCommandHandler(f)
}

func (c *CompositionRoot) CreateDeletePresetCommandHandler() commands.DeletePresetCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeletePresetCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateShipFromCommandHandler() commands.UpdateShipFromCommandHandler {
	var f commands.ShipFromUoWFactory = FuncShipFromUoWFactory(func() commands.ShipFromUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipFromCommandHandler(f)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPresetsQueryHandler() queries.ListPresetsQueryHandler {
	return queries.NewListPresetsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipFromQueryHandler() queries.GetShipFromQueryHandler {
	return queries.NewGetShipFromQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQuotesQueryHandler() queries.GetShipmentQuotesQueryHandler {
	// Reads only; the repositories bind to the main connection.
	uow := c.uowFactory.Create()
	return queries.NewGetShipmentQuotesQueryHandler(
		uow.ShipmentRepository(),
		uow.PresetRepository(),
		uow.ShipFromRepository(),
		c.quoteCache,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return jobs.NewJobManager(c.CreateRefreshLabelStatusCommandHandler(), f, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.ServerParams{
		CreateShipmentHandler: c.CreateCreateShipmentCommandHandler(),
		UpdateShipmentHandler: c.CreateUpdateShipmentCommandHandler(),
		DeleteShipmentHandler: c.CreateDeleteShipmentCommandHandler(),
		BuyLabelHandler:       c.CreateBuyLabelCommandHandler(),
		RefreshLabelHandler:   c.CreateRefreshLabelStatusCommandHandler(),
		CreatePresetHandler:   c.CreateCreatePresetCommandHandler(),
		UpdatePresetHandler:   c.CreateUpdatePresetCommandHandler(),
		DeletePresetHandler:   c.CreateDeletePresetCommandHandler(),
		UpdateShipFromHandler: c.CreateUpdateShipFromCommandHandler(),
		ListShipmentsHandler:  c.CreateListShipmentsQueryHandler(),
		QuotesHandler:         c.CreateGetShipmentQuotesQueryHandler(),
		ListPresetsHandler:    c.CreateListPresetsQueryHandler(),
		GetShipFromHandler:    c.CreateGetShipFromQueryHandler(),
		Logger:                c.logger,
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncShipFromUoWFactory func() commands.ShipFromUoW

func (f FuncShipFromUoWFactory) Create() commands.ShipFromUoW {
	return f()
}
