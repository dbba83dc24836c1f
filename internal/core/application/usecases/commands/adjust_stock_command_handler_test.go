package commands_test

import (
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStockBookingHandler_AdjustBelowMinPublishesThreshold(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	uow := newMockUoW()
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.ledger.On("Append", ctx, movement(ledger.MovementAdjustment, -92, "cycle count"),
		ports.AppendOptions{RequireNonNegative: false}).Return(f.materialAt(8), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []event.Event) bool {
		if len(events) != 1 || events[0].Name != event.NameStockBelowThreshold {
			return false
		}
		p, ok := events[0].Payload.(event.StockBelowThreshold)
		return ok && p.Level == "CRITICAL" && p.SuggestedReorder.Equal(decimal.NewFromInt(12))
	})).Return(nil).Once()

	cmd, err := commands.NewAdjustStockCommand(f.materialID, decimal.NewFromInt(-92), "cycle count")
	require.NoError(t, err)

	posting, err := commands.NewStockBookingHandler(stockUoWFactory{uow}, publisher).HandleAdjust(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(posting.Movement.BalanceAfter()))
	uow.assertAll(t)
	publisher.AssertExpectations(t)
}

func TestStockBookingHandler_ReceiveNormalLevelIsQuiet(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	uow := newMockUoW()
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.ledger.On("Append", ctx, movement(ledger.MovementIn, 50, "supplier receipt"), mock.Anything).
		Return(f.materialAt(150), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewReceiveStockCommand(f.materialID, decimal.NewFromInt(50), "")
	require.NoError(t, err)

	_, err = commands.NewStockBookingHandler(stockUoWFactory{uow}, publisher).HandleReceive(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestStockBookingHandler_UnknownMaterial(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	uow := newMockUoW()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.ledger.On("Append", ctx, mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("raw material", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewAdjustStockCommand(id, decimal.NewFromInt(3), "found in drawer")
	_, err := commands.NewStockBookingHandler(stockUoWFactory{uow}, nil).HandleAdjust(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, err, ledger.ErrWriteFailure)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewAdjustStockCommand_Validation(t *testing.T) {
	_, err := commands.NewAdjustStockCommand(kernel.NewUUID(), decimal.Zero, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewReceiveStockCommand(kernel.NewUUID(), decimal.NewFromInt(-1), "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero commands.AdjustStockCommand
	require.True(t, errors.Is(zero.Validate(), commands.ErrAdjustStockCommandIsNotConstructed))
}
