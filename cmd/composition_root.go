package cmd

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/out/logbus"
	"backoffice/internal/adapters/out/memory"
	"backoffice/internal/adapters/out/postgres"
	redisadapter "backoffice/internal/adapters/out/redis"
	"backoffice/internal/adapters/out/redis/eventbus"
	"backoffice/internal/adapters/out/redis/undolog"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide resources and builds every handler
// from them.
type CompositionRoot struct {
	config     Config
	logger     zerolog.Logger
	gormDB     *gorm.DB
	redis      *goredis.Client
	uowFactory *postgres.GormUnitOfWorkFactory
	undoLog    ports.UndoLog
	publisher  ports.EventPublisher
}

// NewCompositionRoot wires the adapters. A nil redis client keeps the undo
// log in memory and events in the log only.
func NewCompositionRoot(config Config, logger zerolog.Logger, gormDB *gorm.DB, rdb *goredis.Client) (*CompositionRoot, error) {
	publishers := []ports.EventPublisher{logbus.NewPublisher(logger)}
	if rdb != nil {
		publishers = append(publishers, eventbus.NewPublisher(rdb, config.EventsChannel))
	}

	var undoLog ports.UndoLog
	switch config.UndoLogBackend {
	case UndoLogRedis:
		if rdb == nil {
			return nil, errors.New("redis undo log requested without a redis client")
		}
		undoLog = undolog.New(rdb, config.UndoLogCapacity)
	default:
		undoLog = memory.NewUndoLog(config.UndoLogCapacity)
	}

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		redis:      rdb,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		undoLog:    undoLog,
		publisher:  logbus.NewFanOut(publishers...),
	}, nil
}

// OpenRedis connects when REDIS_URL is set and returns nil otherwise.
func OpenRedis(ctx context.Context, config Config) (*goredis.Client, error) {
	if config.RedisURL == "" {
		return nil, nil //nolint:nilnil // redis is optional
	}
	return redisadapter.NewClient(ctx, config.RedisURL)
}

func (c *CompositionRoot) Close() error {
	var errList []error
	if c.redis != nil {
		errList = append(errList, c.redis.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.undoLog, c.publisher, c.config.StrictStock)
}

func (c *CompositionRoot) CreateUndoOrderCommandHandler() commands.UndoOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUndoOrderCommandHandler(f, c.undoLog, c.publisher, c.config.StrictStock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderDetailsCommandHandler(f)
}

func (c *CompositionRoot) CreateStockBookingHandler() commands.StockBookingHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStockBookingHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateMaterialCommandHandler() commands.UpdateMaterialCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateMaterialCommandHandler(f)
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateMaterialCommandHandler() commands.CreateMaterialCommandHandler {
	return commands.NewCreateMaterialCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateSupplierCommandHandler() commands.CreateSupplierCommandHandler {
	return commands.NewCreateSupplierCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateResolveConflictCommandHandler() commands.ResolveConflictCommandHandler {
	var f commands.ConflictUoWFactory = FuncConflictUoWFactory(func() commands.ConflictUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveConflictCommandHandler(f)
}

func (c *CompositionRoot) CreateGetLowStockReportQueryHandler() (queries.GetLowStockReportQueryHandler, error) {
	return queries.NewGetLowStockReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerDiscrepanciesQueryHandler() (queries.GetLedgerDiscrepanciesQueryHandler, error) {
	return queries.NewGetLedgerDiscrepanciesQueryHandler(c.gormDB)
}

// CreateHTTPHandlers builds every use case the REST adapter serves.
func (c *CompositionRoot) CreateHTTPHandlers() (http.Handlers, error) {
	getOrder, err := queries.NewGetOrderQueryHandler(c.gormDB, c.undoLog)
	if err != nil {
		return http.Handlers{}, err
	}
	getStockLevel, err := queries.NewGetStockLevelQueryHandler(c.gormDB)
	if err != nil {
		return http.Handlers{}, err
	}
	lowStock, err := c.CreateGetLowStockReportQueryHandler()
	if err != nil {
		return http.Handlers{}, err
	}
	movements, err := queries.NewGetMaterialMovementsQueryHandler(c.gormDB)
	if err != nil {
		return http.Handlers{}, err
	}
	conflicts, err := queries.NewListConflictsQueryHandler(c.gormDB)
	if err != nil {
		return http.Handlers{}, err
	}

	return http.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		TransitionOrder:    c.CreateTransitionOrderCommandHandler(),
		UndoOrder:          c.CreateUndoOrderCommandHandler(),
		UpdateOrderDetails: c.CreateUpdateOrderDetailsCommandHandler(),
		StockBooking:       c.CreateStockBookingHandler(),
		CreateMaterial:     c.CreateCreateMaterialCommandHandler(),
		UpdateMaterial:     c.CreateUpdateMaterialCommandHandler(),
		CreateSupplier:     c.CreateCreateSupplierCommandHandler(),
		CreateProduct:      c.CreateCreateProductCommandHandler(),
		ResolveConflict:    c.CreateResolveConflictCommandHandler(),

		GetOrder:             getOrder,
		GetStockLevel:        getStockLevel,
		GetLowStockReport:    lowStock,
		GetMaterialMovements: movements,
		ListConflicts:        conflicts,
	}, nil
}

// CreateRouter builds the echo instance with every route registered.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	handlers, err := c.CreateHTTPHandlers()
	if err != nil {
		return nil, fmt.Errorf("build handlers: %w", err)
	}
	return http.NewRouter(ctx, http.RouterConfig{
		Logger:           c.logger.With().Str("component", "http").Logger(),
		ValidateRequests: c.config.OpenAPIValidation,
	}, http.NewServer(handlers))
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	lowStock, err := c.CreateGetLowStockReportQueryHandler()
	if err != nil {
		return nil, err
	}
	audit, err := c.CreateGetLedgerDiscrepanciesQueryHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(jobs.Schedules{
		LowStockScan: c.config.LowStockScanSchedule,
		LedgerAudit:  c.config.LedgerAuditSchedule,
	}, lowStock, audit, c.publisher, c.logger), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncConflictUoWFactory func() commands.ConflictUoW

func (f FuncConflictUoWFactory) Create() commands.ConflictUoW {
	return f()
}
