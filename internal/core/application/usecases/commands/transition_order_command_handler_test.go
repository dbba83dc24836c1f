package commands_test

import (
	"errors"
	"testing"
	"time"

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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

// fixture is scenario P1/M1: product P1 uses 2 units of M1 per unit, and the
// order holds one item of 3 x P1.
type fixture struct {
	productID  kernel.UUID
	materialID kernel.UUID
	recipes    []*recipe.Recipe
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{productID: kernel.NewUUID(), materialID: kernel.NewUUID()}
	r, err := recipe.NewRecipe(kernel.NewUUID(), f.productID, &f.materialID, recipe.TypeMaterial,
		decimal.NewFromInt(2), "pcs", "")
	require.NoError(t, err)
	f.recipes = []*recipe.Recipe{r}
	return f
}

func (f fixture) order(t *testing.T, status order.Status, committed bool) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), f.productID, 3, decimal.NewFromInt(40), nil)
	require.NoError(t, err)
	return order.RestoreOrder(kernel.NewUUID(), status, []*order.Item{item},
		order.Money{Total: decimal.NewFromInt(120)}, order.Customer{Name: "Ana"}, order.Shipping{},
		"", committed, 3, testNow, testNow)
}

func (f fixture) materialAt(stock int64) *material.RawMaterial {
	return material.RestoreRawMaterial(f.materialID, "M1", "pcs", decimal.NewFromInt(stock),
		decimal.NewFromInt(10), decimal.Zero, decimal.Zero, nil, 5, testNow, testNow)
}

func movement(typ ledger.MovementType, qty int64, reason string) interface{} {
	return mock.MatchedBy(func(m *ledger.Movement) bool {
		return m.Type() == typ && m.Quantity().Equal(decimal.NewFromInt(qty)) && m.Reason() == reason
	})
}

func hasEvent(name string) interface{} {
	return mock.MatchedBy(func(events []event.Event) bool {
		for _, e := range events {
			if e.Name == name {
				return true
			}
		}
		return false
	})
}

func TestTransitionOrderCommandHandler_ConfirmDeductsStock(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Pending, false)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	publisher := new(MockEventPublisher)
	reason := "order:" + o.ID().String() + " confirm"

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.recipes.On("ListByProduct", ctx, f.productID).Return(f.recipes, nil).Once()
	uow.ledger.On("Append", ctx, movement(ledger.MovementOut, -6, reason), mock.Anything).
		Return(f.materialAt(94), nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.orders.On("AddStatusChange", ctx, mock.MatchedBy(func(c order.StatusChange) bool {
		return c.From == order.Pending && c.To == order.Confirmed && c.Actor == "clerk" && !c.Undo
	})).Return(nil).Once()
	undoLog.On("Push", ctx, mock.MatchedBy(func(e undo.Entry) bool {
		return e.OrderID.IsEqual(o.ID()) && e.PreviousStatus == order.Pending &&
			e.NewStatus == order.Confirmed && e.StockEffect == order.EffectDeduct
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, hasEvent(event.NameOrderStatusChanged)).Return(nil).Once()

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Confirmed, "clerk", nil)
	require.NoError(t, err)

	result, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, publisher, false).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, result.Order.Status())
	assert.True(t, result.Order.StockCommitted())
	assert.Equal(t, order.EffectDeduct, result.Effect)
	require.Len(t, result.Postings, 1)
	assert.True(t, decimal.NewFromInt(94).Equal(result.Postings[0].Movement.BalanceAfter()))
	uow.assertAll(t)
	undoLog.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_CancelRestoresStock(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Confirmed, true)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	publisher := new(MockEventPublisher)
	reason := "order:" + o.ID().String() + " CANCELLED"

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.recipes.On("ListByProduct", ctx, f.productID).Return(f.recipes, nil).Once()
	uow.ledger.On("Append", ctx, movement(ledger.MovementReturn, 6, reason), mock.Anything).
		Return(f.materialAt(100), nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.orders.On("AddStatusChange", ctx, mock.Anything).Return(nil).Once()
	undoLog.On("Push", ctx, mock.MatchedBy(func(e undo.Entry) bool {
		return e.StockEffect == order.EffectRestore && e.NewStatus == order.Cancelled
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Cancelled, "clerk", nil)
	result, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, publisher, false).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Order.StockCommitted())
	uow.assertAll(t)
	undoLog.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_InvalidEdgeHasNoSideEffects(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Pending, false)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Shipped, "clerk", nil)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, publisher, false).Handle(ctx, cmd)

	var target *order.InvalidTransitionError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, order.Pending, target.From)
	assert.Equal(t, order.Shipped, target.To)
	assert.Equal(t, order.Pending, o.Status())
	uow.assertAll(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	undoLog.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_LedgerFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Pending, false)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	storeErr := errors.New("deadlock detected")

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.recipes.On("ListByProduct", ctx, f.productID).Return(f.recipes, nil).Once()
	uow.ledger.On("Append", ctx, mock.Anything, mock.Anything).Return(nil, storeErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Confirmed, "clerk", nil)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, nil, false).Handle(ctx, cmd)

	require.ErrorIs(t, err, ledger.ErrWriteFailure)
	require.ErrorIs(t, err, storeErr)
	uow.assertAll(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	undoLog.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_StrictModeInsufficientStock(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Pending, false)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.recipes.On("ListByProduct", ctx, f.productID).Return(f.recipes, nil).Once()
	uow.ledger.On("Append", ctx, mock.Anything, ports.AppendOptions{RequireNonNegative: true}).
		Return(nil, &ledger.InsufficientStockError{MaterialID: f.materialID, Required: decimal.NewFromInt(6), Available: decimal.NewFromInt(4)}).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Confirmed, "clerk", nil)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, nil, true).Handle(ctx, cmd)

	require.ErrorIs(t, err, ledger.ErrInsufficientStock)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	undoLog.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_MissingRecipeIsWarning(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Pending, false)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.recipes.On("ListByProduct", ctx, f.productID).Return([]*recipe.Recipe{}, nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.orders.On("AddStatusChange", ctx, mock.Anything).Return(nil).Once()
	undoLog.On("Push", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, hasEvent(event.NameRecipeMissing)).Return(errors.New("redis down")).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Confirmed, "clerk", nil)
	result, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, publisher, false).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Postings)
	assert.True(t, result.Order.StockCommitted())
	uow.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_CommitFailureRemovesUndoEntry(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Processing, true)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)
	commitErr := errors.New("connection lost")

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.orders.On("AddStatusChange", ctx, mock.Anything).Return(nil).Once()
	var pushed undo.Entry
	undoLog.On("Push", ctx, mock.Anything).Run(func(args mock.Arguments) {
		pushed = args.Get(1).(undo.Entry)
	}).Return(nil).Once()
	uow.On("Commit", ctx).Return(commitErr).Once()
	undoLog.On("Discard", ctx, mock.MatchedBy(func(e undo.Entry) bool {
		return e.Equal(pushed)
	})).Return(true, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.ReadyToShip, "clerk", nil)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, nil, false).Handle(ctx, cmd)

	require.ErrorIs(t, err, commitErr)
	assert.True(t, o.ID().IsEqual(pushed.OrderID))
	assert.Equal(t, order.Processing, pushed.PreviousStatus)
	assert.Equal(t, order.ReadyToShip, pushed.NewStatus)
	undoLog.AssertExpectations(t)
	undoLog.AssertNotCalled(t, "Pop", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_StaleSnapshotIsConflict(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.order(t, order.Confirmed, true)
	uow := newMockUoW()
	undoLog := new(MockUndoLog)

	base := o.Snapshot()
	base.Version = o.Version() - 1
	base.Fields[order.FieldStatus] = order.Pending.String()
	base.Fields[order.FieldStockCommitted] = "false"

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.conflicts.On("Add", ctx, mock.MatchedBy(func(r *conflict.Record) bool {
		return r.EntityTable() == conflict.TableOrders && r.EntityID().IsEqual(o.ID()) &&
			r.Priority() == conflict.PriorityHigh && r.Status() == conflict.StatusDetected
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), order.Cancelled, "clerk", &base)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, undoLog, nil, false).Handle(ctx, cmd)

	var detected *conflict.DetectedError
	require.ErrorAs(t, err, &detected)
	assert.ElementsMatch(t, []string{order.FieldStatus, order.FieldStockCommitted}, detected.Fields)
	assert.Equal(t, order.Confirmed, o.Status())
	uow.assertAll(t)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	undoLog.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_NotFound(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	id := kernel.NewUUID()
	notFound := errors.New("object not found")

	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, id).Return(nil, notFound).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewTransitionOrderCommand(id, order.Confirmed, "clerk", nil)
	_, err := commands.NewTransitionOrderCommandHandler(uowFactory{uow}, new(MockUndoLog), nil, false).Handle(ctx, cmd)

	require.ErrorIs(t, err, notFound)
}

func TestNewTransitionOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(kernel.UUID{}, order.Unknown, " ", nil)

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, err.Error(), "status is invalid")
	assert.Contains(t, err.Error(), "actor")

	var zero commands.TransitionOrderCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
}
