package queries

import (
	"context"
	"sort"

	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetLowStockReportQueryHandler struct {
	db      *gorm.DB
	advisor services.StockAdvisor
}

func NewGetLowStockReportQueryHandler(db *gorm.DB) (GetLowStockReportQueryHandler, error) {
	if db == nil {
		return GetLowStockReportQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return GetLowStockReportQueryHandler{db: db, advisor: services.NewStockAdvisor()}, nil
}

// Handle prefilters candidates in SQL and leaves the final verdict to the
// advisor. CRITICAL rows come before LOW ones, then by name.
func (h GetLowStockReportQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockReportQuery,
) ([]StockLevelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ` + materialColumns + `
		FROM raw_materials
		WHERE stock_quantity <= min_stock_quantity
		   OR stock_quantity < min_stock_quantity * 1.2
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]StockLevelView, 0)
	for rows.Next() {
		m, scanErr := scanMaterial(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		view := stockLevelView(h.advisor, m)
		if view.Level.NeedsAttention() {
			report = append(report, view)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Level == material.LevelCritical && report[j].Level != material.LevelCritical
	})
	return report, nil
}
