package services_test

import (
	"testing"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStockAdvisor_Classify(t *testing.T) {
	advisor := services.NewStockAdvisor()
	minStock := decimal.NewFromInt(100)

	tests := []struct {
		stock string
		want  material.StockLevel
	}{
		{"-5", material.LevelCritical},
		{"0", material.LevelCritical},
		{"100", material.LevelCritical},
		{"100.01", material.LevelLow},
		{"119", material.LevelLow},
		{"119.99", material.LevelLow},
		{"120", material.LevelNormal},
		{"120.01", material.LevelNormal},
		{"500", material.LevelNormal},
	}

	for _, tt := range tests {
		t.Run(tt.stock, func(t *testing.T) {
			assert.Equal(t, tt.want, advisor.Classify(decimal.RequireFromString(tt.stock), minStock))
		})
	}
}

func TestStockAdvisor_ClassifyZeroMinimum(t *testing.T) {
	advisor := services.NewStockAdvisor()

	assert.Equal(t, material.LevelCritical, advisor.Classify(decimal.Zero, decimal.Zero))
	assert.Equal(t, material.LevelNormal, advisor.Classify(decimal.NewFromInt(1), decimal.Zero))
}

func TestStockAdvisor_SuggestReorderQty(t *testing.T) {
	advisor := services.NewStockAdvisor()
	minStock := decimal.NewFromInt(100)

	assert.True(t, decimal.NewFromInt(110).Equal(advisor.SuggestReorderQty(decimal.NewFromInt(90), minStock)))
	assert.True(t, decimal.NewFromInt(205).Equal(advisor.SuggestReorderQty(decimal.NewFromInt(-5), minStock)))
	assert.True(t, decimal.Zero.Equal(advisor.SuggestReorderQty(decimal.NewFromInt(200), minStock)))
	assert.True(t, decimal.Zero.Equal(advisor.SuggestReorderQty(decimal.NewFromInt(350), minStock)))
}

func TestStockAdvisor_Assess(t *testing.T) {
	now := time.Now()
	m := material.RestoreRawMaterial(kernel.NewUUID(), "Glue", "kg",
		decimal.NewFromInt(110), decimal.NewFromInt(100), decimal.Zero, decimal.Zero, nil, 1, now, now)

	a := services.NewStockAdvisor().Assess(m)

	assert.Equal(t, material.LevelLow, a.Level)
	assert.True(t, decimal.NewFromInt(90).Equal(a.SuggestedReorder))
}
