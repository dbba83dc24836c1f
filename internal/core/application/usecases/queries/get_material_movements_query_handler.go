package queries

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetMaterialMovementsQueryHandler struct {
	db *gorm.DB
}

func NewGetMaterialMovementsQueryHandler(db *gorm.DB) (GetMaterialMovementsQueryHandler, error) {
	if db == nil {
		return GetMaterialMovementsQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return GetMaterialMovementsQueryHandler{db: db}, nil
}

// Handle returns one page of movements. An unknown material is reported as
// not found rather than as an empty page.
func (h GetMaterialMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetMaterialMovementsQuery,
) (*GetMaterialMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	db := h.db.WithContext(ctx)
	materialID := query.MaterialID().Bytes()

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM raw_materials WHERE id = ?)`, materialID).
		Row().Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("material", query.MaterialID())
	}

	resp := GetMaterialMovementsQueryResponse{
		MaterialID: query.MaterialID(),
		Page:       query.Page(),
		Limit:      query.Limit(),
		Items:      make([]MovementView, 0),
	}
	if err := db.Raw(`SELECT COUNT(*) FROM stock_movements WHERE raw_material_id = ?`, materialID).
		Row().Scan(&resp.Total); err != nil {
		return nil, err
	}

	rows, err := db.Raw(`
		SELECT id, type, quantity, balance_after, reason, order_id, created_at
		FROM stock_movements
		WHERE raw_material_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, materialID, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view MovementView
		var id uuid.UUID
		var orderID uuid.NullUUID

		if err = rows.Scan(
			&id, &view.Type, &view.Quantity, &view.BalanceAfter, &view.Reason, &orderID, &view.CreatedAt,
		); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &resp, nil
}
