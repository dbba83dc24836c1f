package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler stores a new PENDING order. Every item must
// reference a known product.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.RecipeRepository()
	items := make([]*order.Item, 0, len(cmd.Items()))
	subtotal := decimal.Zero
	for _, in := range cmd.Items() {
		product, err := catalog.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		price := product.Price()
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		item, err := order.NewItem(kernel.NewUUID(), product.ID(), in.Quantity, price, in.Personalization)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}

	money := cmd.Money()
	if money.Total.IsZero() {
		money.Total = subtotal
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.Shipping(), money, h.now())
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = o.AddItem(item); err != nil {
			return nil, err
		}
	}
	if cmd.Notes() != "" {
		if err = o.UpdateDetails(map[string]string{order.FieldNotes: cmd.Notes()}, o.CreatedAt()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", o.ID().String()).Int("items", len(items)).Str("total", money.Total.String()).Msg("order created")
	return o, nil
}
