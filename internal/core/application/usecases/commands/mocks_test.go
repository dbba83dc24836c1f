package commands_test

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/recipe"
	"backoffice/internal/core/domain/model/undo"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	return m.Called(ctx, change).Error(0)
}

type MockMaterialRepository struct{ mock.Mock }

func (m *MockMaterialRepository) Add(ctx context.Context, rm *material.RawMaterial) error {
	return m.Called(ctx, rm).Error(0)
}

func (m *MockMaterialRepository) Update(ctx context.Context, rm *material.RawMaterial) error {
	return m.Called(ctx, rm).Error(0)
}

func (m *MockMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*material.RawMaterial), args.Error(1)
}

func (m *MockMaterialRepository) List(ctx context.Context) ([]*material.RawMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*material.RawMaterial), args.Error(1)
}

func (m *MockMaterialRepository) AddSupplier(ctx context.Context, s *material.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

type MockRecipeRepository struct{ mock.Mock }

func (m *MockRecipeRepository) AddProduct(ctx context.Context, p *recipe.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRecipeRepository) GetProduct(ctx context.Context, id kernel.UUID) (*recipe.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Product), args.Error(1)
}

func (m *MockRecipeRepository) AddRecipe(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) ListByProduct(ctx context.Context, productID kernel.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Append(
	ctx context.Context, movement *ledger.Movement, opts ports.AppendOptions,
) (*material.RawMaterial, error) {
	args := m.Called(ctx, movement, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*material.RawMaterial), args.Error(1)
}

type MockConflictRepository struct{ mock.Mock }

func (m *MockConflictRepository) Add(ctx context.Context, r *conflict.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockConflictRepository) Update(ctx context.Context, r *conflict.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockConflictRepository) Get(ctx context.Context, id kernel.UUID) (*conflict.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conflict.Record), args.Error(1)
}

type MockUndoLog struct{ mock.Mock }

func (m *MockUndoLog) Push(ctx context.Context, e undo.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockUndoLog) Pop(ctx context.Context, orderID kernel.UUID) (undo.Entry, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(undo.Entry), args.Bool(1), args.Error(2)
}

func (m *MockUndoLog) Discard(ctx context.Context, e undo.Entry) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *MockUndoLog) Entries(ctx context.Context, orderID kernel.UUID) ([]undo.Entry, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]undo.Entry), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	return m.Called(ctx, events).Error(0)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct {
	mock.Mock

	orders    *MockOrderRepository
	materials *MockMaterialRepository
	recipes   *MockRecipeRepository
	ledger    *MockLedgerRepository
	conflicts *MockConflictRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:    new(MockOrderRepository),
		materials: new(MockMaterialRepository),
		recipes:   new(MockRecipeRepository),
		ledger:    new(MockLedgerRepository),
		conflicts: new(MockConflictRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockUoW) MaterialRepository() ports.MaterialRepository { return m.materials }
func (m *MockUoW) RecipeRepository() ports.RecipeRepository     { return m.recipes }
func (m *MockUoW) LedgerRepository() ports.LedgerRepository     { return m.ledger }
func (m *MockUoW) ConflictRepository() ports.ConflictRepository { return m.conflicts }

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.materials.AssertExpectations(t)
	m.recipes.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.conflicts.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type stockUoWFactory struct{ uow *MockUoW }

func (f stockUoWFactory) Create() commands.StockUoW { return f.uow }

type catalogUoWFactory struct{ uow *MockUoW }

func (f catalogUoWFactory) Create() commands.CatalogUoW { return f.uow }

type conflictUoWFactory struct{ uow *MockUoW }

func (f conflictUoWFactory) Create() commands.ConflictUoW { return f.uow }
