package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	settings   ports.SettingsProvider
	engine     services.LifecycleEngine
	ranker     services.CandidateRanker
	logger     *slog.Logger
	clock      commands.Clock
}

// NewCompositionRoot wires the use cases. settings is the cached admin settings
// reader; clock may be nil for the system clock.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	settings ports.SettingsProvider,
	logger *slog.Logger,
	clock commands.Clock,
) (CompositionRoot, error) {
	policy, err := services.ParseRankingPolicy(cfg.CandidateRanking)
	if err != nil {
		return CompositionRoot{}, err
	}
	engine := services.NewLifecycleEngine()
	ranker, err := services.NewCandidateRanker(engine, policy)
	if err != nil {
		return CompositionRoot{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		settings:   settings,
		engine:     engine,
		ranker:     ranker,
		logger:     logger,
		clock:      clock,
	}, nil
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.engine, c.logger, c.clock)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.engine, c.logger, c.clock)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.CatalogOrderUoWFactory = FuncCatalogOrderUoWFactory(func() commands.CatalogOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.settings, c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.CatalogDriverUoWFactory = FuncCatalogDriverUoWFactory(func() commands.CatalogDriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateSetDriverVerificationCommandHandler() commands.SetDriverVerificationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverVerificationCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRecordDriverHeartbeatCommandHandler() commands.RecordDriverHeartbeatCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDriverHeartbeatCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateExpireDriverPresenceCommandHandler() commands.ExpireDriverPresenceCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireDriverPresenceCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableDriversQueryHandler() queries.ListAvailableDriversQueryHandler {
	return queries.NewListAvailableDriversQueryHandler(c.gormDB, c.ranker)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		ChangeOrderStatus:     c.CreateChangeOrderStatusCommandHandler(),
		AssignDriver:          c.CreateAssignDriverCommandHandler(),
		PlaceOrder:            c.CreatePlaceOrderCommandHandler(),
		DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
		RegisterDriver:        c.CreateRegisterDriverCommandHandler(),
		SetDriverVerification: c.CreateSetDriverVerificationCommandHandler(),
		RecordHeartbeat:       c.CreateRecordDriverHeartbeatCommandHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetOrderDetails:       c.CreateGetOrderDetailsQueryHandler(),
		ListAvailableDrivers:  c.CreateListAvailableDriversQueryHandler(),
	}, c.settings, c.cfg.JWTSecret, c.logger)
}

// CreateJobManager wires the background jobs. refresher reloads the settings cache.
func (c *CompositionRoot) CreateJobManager(refresher jobs.SettingsRefresher) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireDriverPresenceCommandHandler(),
		c.cfg.PresenceTTL,
		refresher,
		jobs.Schedules{
			PresenceSweep:   c.cfg.PresenceSweepSchedule,
			SettingsRefresh: c.cfg.SettingsRefreshSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCatalogOrderUoWFactory func() commands.CatalogOrderUoW

func (f FuncCatalogOrderUoWFactory) Create() commands.CatalogOrderUoW {
	return f()
}

type FuncCatalogDriverUoWFactory func() commands.CatalogDriverUoW

func (f FuncCatalogDriverUoWFactory) Create() commands.CatalogDriverUoW {
	return f()
}
