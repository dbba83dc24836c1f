// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database and return flat read models.
package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items, its current snapshot and
// the depth of its undo stack.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the order read model. Snapshot is what a client
// sends back as its base when it edits or transitions the order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Status          string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	ShippingMethod  string
	TrackingCode    string
	Notes           string
	Total           decimal.Decimal
	Received        decimal.Decimal
	Discount        decimal.Decimal
	LaborCost       decimal.Decimal
	NetProfit       decimal.Decimal
	StockCommitted  bool
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItemView
	UndoDepth       int
	Snapshot        conflict.Snapshot
}

type OrderItemView struct {
	ID              kernel.UUID
	ProductID       kernel.UUID
	Quantity        int
	UnitPrice       decimal.Decimal
	Personalization map[string]any
}
