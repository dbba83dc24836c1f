package services

import (
	"backoffice/internal/core/domain/model/material"

	"github.com/shopspring/decimal"
)

var lowStockFactor = decimal.RequireFromString("1.2")

// StockAssessment is the advisor's verdict on one material.
type StockAssessment struct {
	Level            material.StockLevel
	SuggestedReorder decimal.Decimal
}

// StockAdvisor classifies balances against their minimum.
//
//	stock <= min               CRITICAL
//	min < stock < min * 1.2    LOW
//	otherwise                  NORMAL
type StockAdvisor struct{}

func NewStockAdvisor() StockAdvisor {
	return StockAdvisor{}
}

func (StockAdvisor) Classify(stock, minStock decimal.Decimal) material.StockLevel {
	switch {
	case stock.LessThanOrEqual(minStock):
		return material.LevelCritical
	case stock.LessThan(minStock.Mul(lowStockFactor)):
		return material.LevelLow
	default:
		return material.LevelNormal
	}
}

// SuggestReorderQty returns max(0, 2*min - stock).
func (StockAdvisor) SuggestReorderQty(stock, minStock decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, minStock.Mul(decimal.NewFromInt(2)).Sub(stock))
}

func (a StockAdvisor) Assess(m *material.RawMaterial) StockAssessment {
	return StockAssessment{
		Level:            a.Classify(m.StockQuantity(), m.MinStock()),
		SuggestedReorder: a.SuggestReorderQty(m.StockQuantity(), m.MinStock()),
	}
}
