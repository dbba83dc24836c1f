package commands_test

import (
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/recipe"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_DefaultsTotalToItemSum(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	product, err := recipe.NewProduct(kernel.NewUUID(), "Mug", decimal.NewFromInt(25), 0)
	require.NoError(t, err)
	custom := decimal.NewFromInt(30)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.recipes.On("GetProduct", ctx, product.ID()).Return(product, nil).Twice()
	uow.orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Pending && len(o.Items()) == 2
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Customer{Name: "Bia"}, order.Shipping{},
		order.Money{}, "gift wrap", []commands.OrderItemInput{
			{ProductID: product.ID(), Quantity: 2},
			{ProductID: product.ID(), Quantity: 1, UnitPrice: &custom, Personalization: map[string]any{"name": "Bia"}},
		})
	require.NoError(t, err)

	o, err := commands.NewCreateOrderCommandHandler(orderUoWFactory{uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(o.Money().Total))
	assert.Equal(t, "gift wrap", o.Notes())
	assert.False(t, o.StockCommitted())
	assert.Equal(t, int64(1), o.Version())
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	productID := kernel.NewUUID()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.recipes.On("GetProduct", ctx, productID).Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Customer{Name: "Bia"}, order.Shipping{},
		order.Money{}, "", []commands.OrderItemInput{{ProductID: productID, Quantity: 1}})
	_, err := commands.NewCreateOrderCommandHandler(orderUoWFactory{uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	tests := map[string]struct {
		items   []commands.OrderItemInput
		money   order.Money
		wantErr error
	}{
		"no items": {
			wantErr: commands.ErrItemsAreRequired,
		},
		"zero quantity": {
			items:   []commands.OrderItemInput{{ProductID: kernel.NewUUID(), Quantity: 0}},
			wantErr: errs.ErrValueIsInvalid,
		},
		"negative discount": {
			items:   []commands.OrderItemInput{{ProductID: kernel.NewUUID(), Quantity: 1}},
			money:   order.Money{Discount: decimal.NewFromInt(-1)},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Customer{Name: "Bia"}, order.Shipping{},
				tt.money, "", tt.items)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
