package queries

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const materialColumns = `
	id, name, unit,
	stock_quantity, min_stock_quantity, max_stock_quantity, unit_price,
	supplier_id, version, created_at, updated_at`

type GetStockLevelQueryHandler struct {
	db      *gorm.DB
	advisor services.StockAdvisor
}

func NewGetStockLevelQueryHandler(db *gorm.DB) (GetStockLevelQueryHandler, error) {
	if db == nil {
		return GetStockLevelQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return GetStockLevelQueryHandler{db: db, advisor: services.NewStockAdvisor()}, nil
}

func (h GetStockLevelQueryHandler) Handle(ctx context.Context, query GetStockLevelQuery) (*StockLevelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(
		`SELECT `+materialColumns+` FROM raw_materials WHERE id = ?`,
		query.MaterialID().Bytes(),
	).Row()

	m, err := scanMaterial(row)
	if isNoRows(err) {
		return nil, errs.NewObjectNotFoundError("material", query.MaterialID())
	}
	if err != nil {
		return nil, err
	}

	view := stockLevelView(h.advisor, m)
	return &view, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanMaterial reads the columns listed in materialColumns.
func scanMaterial(row rowScanner) (*material.RawMaterial, error) {
	var (
		rawID                               uuid.UUID
		rawSupplierID                       uuid.NullUUID
		name, unit                          string
		stock, minStock, maxStock, unitCost decimal.Decimal
		version                             int64
		createdAt, updatedAt                time.Time
	)
	if err := row.Scan(
		&rawID, &name, &unit,
		&stock, &minStock, &maxStock, &unitCost,
		&rawSupplierID, &version, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromGoogle(rawID)
	if err != nil {
		return nil, err
	}
	supplierID, err := optionalUUID(rawSupplierID)
	if err != nil {
		return nil, err
	}

	return material.RestoreRawMaterial(
		id, name, unit,
		stock, minStock, maxStock, unitCost,
		supplierID, version, createdAt, updatedAt,
	), nil
}

func stockLevelView(advisor services.StockAdvisor, m *material.RawMaterial) StockLevelView {
	assessment := advisor.Assess(m)
	return StockLevelView{
		MaterialID:       m.ID(),
		Name:             m.Name(),
		Unit:             m.Unit(),
		StockQuantity:    m.StockQuantity(),
		MinStock:         m.MinStock(),
		MaxStock:         m.MaxStock(),
		Level:            assessment.Level,
		SuggestedReorder: assessment.SuggestedReorder,
		Version:          m.Version(),
		Snapshot:         m.Snapshot(),
	}
}
