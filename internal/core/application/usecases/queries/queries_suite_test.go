package queries_test

import (
	"context"
	"time"

	postgres_adapter "backoffice/internal/adapters/out/postgres"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueriesTestSuite starts one PostgreSQL container for every read model test
// and seeds rows through the real repositories.
type QueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *QueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *QueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.Require().NoError(postgres_adapter.TruncateAll(suite.db))
}

// seedMaterial stores a material and books an opening receipt of stock.
func (suite *QueriesTestSuite) seedMaterial(name string, minStock, stock int64) *material.RawMaterial {
	ctx := context.Background()
	now := time.Now().UTC()

	m, err := material.NewRawMaterial(
		kernel.NewUUID(), name, "kg",
		decimal.NewFromInt(minStock), decimal.Zero, decimal.NewFromInt(3),
		nil, now,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	suite.Require().NoError(uow.MaterialRepository().Add(ctx, m))
	if stock != 0 {
		typ := ledger.MovementIn
		if stock < 0 {
			typ = ledger.MovementAdjustment
		}
		mv, mvErr := ledger.NewMovement(kernel.NewUUID(), m.ID(), typ, decimal.NewFromInt(stock), "opening balance", nil, now)
		suite.Require().NoError(mvErr)
		m, err = uow.LedgerRepository().Append(ctx, mv, ports.AppendOptions{})
		suite.Require().NoError(err)
	}
	suite.Require().NoError(uow.Commit(ctx))
	return m
}

// book appends one movement in its own transaction.
func (suite *QueriesTestSuite) book(materialID kernel.UUID, typ ledger.MovementType, qty int64, orderID *kernel.UUID, at time.Time) {
	ctx := context.Background()
	mv, err := ledger.NewMovement(kernel.NewUUID(), materialID, typ, decimal.NewFromInt(qty), "test", orderID, at)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	_, err = uow.LedgerRepository().Append(ctx, mv, ports.AppendOptions{})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
}
