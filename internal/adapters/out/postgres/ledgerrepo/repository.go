package ledgerrepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/materialrepo"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append increments the balance in one UPDATE ... RETURNING statement, so
// concurrent bookings on the same material serialize on its row and never
// lose an update. The movement row then records the balance that statement
// produced.
//
// With RequireNonNegative the increment carries the guard in its WHERE
// clause; when no row matches, the material is checked to tell a missing row
// from a short balance.
func (r *GormLedgerRepository) Append(
	ctx context.Context, movement *ledger.Movement, opts ports.AppendOptions,
) (*material.RawMaterial, error) {
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	materialID := movement.RawMaterialID()
	qty := movement.Quantity()

	var row materialrepo.MaterialDTO
	query := db.Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", materialID.Bytes())
	if opts.RequireNonNegative {
		query = query.Where("stock_quantity + ? >= 0", qty)
	}
	result := query.Updates(map[string]any{
		"stock_quantity": gorm.Expr("stock_quantity + ?", qty),
		"version":        gorm.Expr("version + 1"),
		"updated_at":     movement.CreatedAt(),
	})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var current materialrepo.MaterialDTO
		err := db.Select("id", "stock_quantity").First(&current, "id = ?", materialID.Bytes()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("raw material", materialID.String())
		}
		if err != nil {
			return nil, err
		}
		return nil, &ledger.InsufficientStockError{
			MaterialID: materialID,
			Required:   qty.Neg(),
			Available:  current.StockQuantity,
		}
	}

	dto := fromDomain(movement, row.StockQuantity)
	if err := db.Create(&dto).Error; err != nil {
		return nil, err
	}

	return materialrepo.ToDomain(row)
}
