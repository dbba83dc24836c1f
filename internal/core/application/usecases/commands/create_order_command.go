package commands

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// OrderItemInput is one requested product line. A nil UnitPrice takes the
// product's catalog price.
type OrderItemInput struct {
	ProductID       kernel.UUID
	Quantity        int
	UnitPrice       *decimal.Decimal
	Personalization map[string]any
}

// CreateOrderCommand records a sale as a PENDING order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, shipping, money, "", items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer order.Customer
	shipping order.Shipping
	money    order.Money
	notes    string
	items    []OrderItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. A zero total is replaced by the
// sum of item subtotals when the order is created.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	shipping order.Shipping,
	money order.Money,
	notes string,
	items []OrderItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		shipping: shipping,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMoney(money),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }
func (c CreateOrderCommand) Shipping() order.Shipping { return c.shipping }
func (c CreateOrderCommand) Money() order.Money       { return c.money }
func (c CreateOrderCommand) Notes() string            { return c.notes }
func (c CreateOrderCommand) Items() []OrderItemInput {
	return append([]OrderItemInput(nil), c.items...)
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setMoney(money order.Money) error {
	if err := money.Validate(); err != nil {
		return err
	}
	c.money = money
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	var errList []error
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
		}
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d quantity", i), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.items = append([]OrderItemInput(nil), items...)
	return nil
}
