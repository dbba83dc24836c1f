package queries

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLedgerDiscrepanciesQueryHandler struct {
	db *gorm.DB
}

func NewGetLedgerDiscrepanciesQueryHandler(db *gorm.DB) (GetLedgerDiscrepanciesQueryHandler, error) {
	if db == nil {
		return GetLedgerDiscrepanciesQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return GetLedgerDiscrepanciesQueryHandler{db: db}, nil
}

func (h GetLedgerDiscrepanciesQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerDiscrepanciesQuery,
) ([]DiscrepancyView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT m.id, m.name, m.stock_quantity, COALESCE(SUM(s.quantity), 0) AS ledger_sum
		FROM raw_materials m
		LEFT JOIN stock_movements s ON s.raw_material_id = m.id
		GROUP BY m.id, m.name, m.stock_quantity
		HAVING m.stock_quantity <> COALESCE(SUM(s.quantity), 0)
		ORDER BY m.name, m.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DiscrepancyView, 0)
	for rows.Next() {
		var view DiscrepancyView
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Name, &view.StockQuantity, &view.LedgerSum); err != nil {
			return nil, err
		}
		if view.MaterialID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		view.Difference = view.StockQuantity.Sub(view.LedgerSum)
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
