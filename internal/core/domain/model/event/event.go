// Package event defines the notifications the engine emits after a unit of
// work commits. Delivery is best effort.
package event

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	NameOrderStatusChanged  = "order.status_changed"
	NameStockBelowThreshold = "stock.below_threshold"
	NameRecipeMissing       = "bom.recipe_missing"
)

// Event is the envelope every publisher receives.
type Event struct {
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type OrderStatusChanged struct {
	OrderID kernel.UUID `json:"order_id"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Actor   string      `json:"actor"`
	Undo    bool        `json:"undo"`
	At      time.Time   `json:"at"`
}

type StockBelowThreshold struct {
	MaterialID       kernel.UUID     `json:"material_id"`
	Level            string          `json:"level"`
	Stock            decimal.Decimal `json:"stock"`
	Min              decimal.Decimal `json:"min"`
	SuggestedReorder decimal.Decimal `json:"suggested_reorder"`
}

type RecipeMissing struct {
	OrderID   kernel.UUID `json:"order_id"`
	ProductID kernel.UUID `json:"product_id"`
}

func NewOrderStatusChanged(p OrderStatusChanged) Event {
	return Event{Name: NameOrderStatusChanged, Key: p.OrderID.String(), OccurredAt: p.At, Payload: p}
}

func NewStockBelowThreshold(p StockBelowThreshold, at time.Time) Event {
	return Event{Name: NameStockBelowThreshold, Key: p.MaterialID.String(), OccurredAt: at, Payload: p}
}

func NewRecipeMissing(p RecipeMissing, at time.Time) Event {
	return Event{Name: NameRecipeMissing, Key: p.OrderID.String(), OccurredAt: at, Payload: p}
}
