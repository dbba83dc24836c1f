package postgres

import (
	"backoffice/internal/adapters/out/postgres/conflictrepo"
	"backoffice/internal/adapters/out/postgres/ledgerrepo"
	"backoffice/internal/adapters/out/postgres/materialrepo"
	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/reciperepo"

	"gorm.io/gorm"
)

// Models lists every table the engine owns, in dependency order.
func Models() []any {
	return []any{
		&materialrepo.SupplierDTO{},
		&materialrepo.MaterialDTO{},
		&reciperepo.ProductDTO{},
		&reciperepo.RecipeDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&ledgerrepo.MovementDTO{},
		&conflictrepo.RecordDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TruncateAll empties every table. Integration tests call it between cases.
func TruncateAll(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE conflict_records, stock_movements, order_status_changes,
		order_items, orders, recipes, products, raw_materials, suppliers`).Error
}
