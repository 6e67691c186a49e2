package cmd

import (
	"log/slog"

	httpadapter "roundplanner/internal/adapters/in/http"
	"roundplanner/internal/adapters/out/distance"
	"roundplanner/internal/adapters/out/oracle"
	"roundplanner/internal/adapters/out/postgres"
	"roundplanner/internal/adapters/out/postgres/companyrepo"
	"roundplanner/internal/adapters/out/postgres/shipmentrepo"
	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateMoveStopCommandHandler() commands.MoveStopCommandHandler {
	return commands.NewMoveStopCommandHandler(c.roundStopsUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateApplyRouteCommandHandler() commands.ApplyRouteCommandHandler {
	return commands.NewApplyRouteCommandHandler(c.roundStopsUoWFactory())
}

func (c *CompositionRoot) CreateSetRoundStatusCommandHandler() commands.SetRoundStatusCommandHandler {
	return commands.NewSetRoundStatusCommandHandler(c.roundStopsUoWFactory(), c.shipmentDirectory(), c.logger)
}

func (c *CompositionRoot) CreateCreateRoundCommandHandler() commands.CreateRoundCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRoundCommandHandler(f)
}

func (c *CompositionRoot) CreateGetRoundStopsQueryHandler() queries.GetRoundStopsQueryHandler {
	return queries.NewGetRoundStopsQueryHandler(c.gormDB)
}

// CreateSuggestRouteQueryHandler reads through a unit of work that is never
// begun, so its repositories run on the plain connection.
func (c *CompositionRoot) CreateSuggestRouteQueryHandler() queries.SuggestRouteQueryHandler {
	reader := c.uowFactory.Create()
	return queries.NewSuggestRouteQueryHandler(
		reader.RoundRepository(),
		reader.StopRepository(),
		c.shipmentDirectory(),
		companyrepo.NewGormCompanyDirectory(c.gormDB),
		c.routeOptimizer(),
		c.distanceEstimator(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateRound:    c.CreateCreateRoundCommandHandler(),
		GetRoundStops:  c.CreateGetRoundStopsQueryHandler(),
		MoveStop:       c.CreateMoveStopCommandHandler(),
		SetRoundStatus: c.CreateSetRoundStatusCommandHandler(),
		SuggestRoute:   c.CreateSuggestRouteQueryHandler(),
		ApplyRoute:     c.CreateApplyRouteCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) roundStopsUoWFactory() commands.RoundStopsUoWFactory {
	return FuncRoundStopsUoWFactory(func() commands.RoundStopsUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentDirectory() ports.ShipmentDirectory {
	return shipmentrepo.NewGormShipmentDirectory(c.gormDB)
}

func (c *CompositionRoot) routeOptimizer() ports.RouteOptimizer {
	return oracle.NewClient(oracle.Config{
		BaseURL: c.config.OracleURL,
		APIKey:  c.config.OracleAPIKey,
		Timeout: c.config.OracleTimeout,
	}, c.metrics, c.logger)
}

// distanceEstimator falls back to straight-line distances when no routing
// provider is configured.
func (c *CompositionRoot) distanceEstimator() ports.DistanceEstimator {
	if c.config.DistanceURL == "" {
		return distance.NewStraightLineEstimator()
	}
	return distance.NewClient(c.config.DistanceURL, c.config.DistanceTimeout, c.metrics, c.logger)
}

type FuncRoundStopsUoWFactory func() commands.RoundStopsUoW

func (f FuncRoundStopsUoWFactory) Create() commands.RoundStopsUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
