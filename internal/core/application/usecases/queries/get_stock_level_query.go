package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetStockLevelQueryIsNotConstructed = errors.New(
	"GetStockLevelQuery must be created via NewGetStockLevelQuery constructor",
)

// GetStockLevelQuery classifies one material's balance and suggests how much
// to reorder.
//
// Example:
//
//	query, _ := NewGetStockLevelQuery(materialID)
//	level, err := handler.Handle(ctx, query)
//	if err == nil && level.Level.NeedsAttention() {
//	    fmt.Printf("reorder %s %s\n", level.SuggestedReorder, level.Unit)
//	}
type GetStockLevelQuery struct {
	materialID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStockLevelQuery(materialID kernel.UUID) (GetStockLevelQuery, error) {
	if err := materialID.Validate(); err != nil {
		return GetStockLevelQuery{}, err
	}
	return GetStockLevelQuery{materialID: materialID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStockLevelQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelQueryIsNotConstructed)
}

func (q GetStockLevelQuery) MaterialID() kernel.UUID { return q.materialID }

// StockLevelView is one material with the advisor's verdict. Snapshot is the
// base a client sends back when it edits the material.
type StockLevelView struct {
	MaterialID       kernel.UUID
	Name             string
	Unit             string
	StockQuantity    decimal.Decimal
	MinStock         decimal.Decimal
	MaxStock         decimal.Decimal
	Level            material.StockLevel
	SuggestedReorder decimal.Decimal
	Version          int64
	Snapshot         conflict.Snapshot
}
