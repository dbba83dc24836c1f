package undolog_test

import (
	"context"
	"testing"
	"time"

	redisadapter "backoffice/internal/adapters/out/redis"
	"backoffice/internal/adapters/out/redis/undolog"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/undo"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type UndoLogIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	rdb       *redis.Client
}

func (suite *UndoLogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	url, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	rdb, err := redisadapter.NewClient(ctx, url)
	suite.Require().NoError(err)
	suite.rdb = rdb
}

func (suite *UndoLogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
}

func (suite *UndoLogIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		_ = suite.rdb.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UndoLogIntegrationTestSuite) TestPushPop_NewestFirst() {
	ctx := context.Background()
	log := undolog.New(suite.rdb, 10)
	orderID := kernel.NewUUID()

	first := entry(orderID, order.Pending, order.Confirmed, order.EffectDeduct)
	second := entry(orderID, order.Confirmed, order.Processing, order.EffectNone)
	suite.Require().NoError(log.Push(ctx, first))
	suite.Require().NoError(log.Push(ctx, second))

	got, ok, err := log.Pop(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(order.Processing, got.NewStatus)
	suite.Equal(order.Confirmed, got.PreviousStatus)

	got, ok, err = log.Pop(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(order.EffectDeduct, got.StockEffect)
	suite.True(orderID.IsEqual(got.OrderID))

	_, ok, err = log.Pop(ctx, orderID)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *UndoLogIntegrationTestSuite) TestPush_EvictsOldestBeyondCapacity() {
	ctx := context.Background()
	log := undolog.New(suite.rdb, 3)
	orderID := kernel.NewUUID()

	statuses := []order.Status{order.Confirmed, order.Processing, order.ReadyToShip, order.Shipped, order.Delivered}
	previous := order.Pending
	for _, s := range statuses {
		suite.Require().NoError(log.Push(ctx, entry(orderID, previous, s, order.EffectNone)))
		previous = s
	}

	entries, err := log.Entries(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(order.Delivered, entries[0].NewStatus)
	suite.Equal(order.ReadyToShip, entries[2].NewStatus)
}

func (suite *UndoLogIntegrationTestSuite) TestStacksAreIndependentPerOrder() {
	ctx := context.Background()
	log := undolog.New(suite.rdb, 0)
	a, b := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(log.Push(ctx, entry(a, order.Pending, order.Confirmed, order.EffectDeduct)))

	entries, err := log.Entries(ctx, b)
	suite.Require().NoError(err)
	suite.Empty(entries)

	_, ok, err := log.Pop(ctx, b)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *UndoLogIntegrationTestSuite) TestDiscard_RemovesOnlyThatEntry() {
	ctx := context.Background()
	log := undolog.New(suite.rdb, 10)
	orderID := kernel.NewUUID()

	failed := entry(orderID, order.Processing, order.ReadyToShip, order.EffectNone)
	later := entry(orderID, order.Processing, order.Cancelled, order.EffectRestore)
	suite.Require().NoError(log.Push(ctx, failed))
	suite.Require().NoError(log.Push(ctx, later))

	removed, err := log.Discard(ctx, failed)
	suite.Require().NoError(err)
	suite.True(removed)

	entries, err := log.Entries(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].Equal(later))

	removed, err = log.Discard(ctx, failed)
	suite.Require().NoError(err)
	suite.False(removed)
}

func entry(orderID kernel.UUID, from, to order.Status, effect order.StockEffect) undo.Entry {
	return undo.Entry{
		OrderID:        orderID,
		PreviousStatus: from,
		NewStatus:      to,
		StockEffect:    effect,
		At:             time.Now().UTC(),
	}
}

func TestUndoLogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UndoLogIntegrationTestSuite))
}
