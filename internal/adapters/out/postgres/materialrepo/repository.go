package materialrepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMaterialRepository implements ports.MaterialRepository using GORM.
type GormMaterialRepository struct {
	db *gorm.DB
}

func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// Add saves a new material. Its balance must be zero; opening stock is booked
// through the ledger.
func (r *GormMaterialRepository) Add(ctx context.Context, aggregate *material.RawMaterial) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.StockQuantity().IsZero() {
		return errs.NewValueIsInvalidErrorWithCause(material.FieldStockQuantity,
			errors.New("new materials start at zero, book opening stock as a receipt"))
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the master data columns when the stored version matches.
func (r *GormMaterialRepository) Update(ctx context.Context, aggregate *material.RawMaterial) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&MaterialDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":               dto.Name,
			"unit":               dto.Unit,
			"min_stock_quantity": dto.MinStockQuantity,
			"max_stock_quantity": dto.MaxStockQuantity,
			"unit_price":         dto.UnitPrice,
			"supplier_id":        dto.SupplierID,
			"updated_at":         dto.UpdatedAt,
			"version":            gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&MaterialDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("raw material", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("raw material")
	}

	aggregate.MarkPersisted(dto.Version + 1)
	return nil
}

// Get retrieves a material by ID.
func (r *GormMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MaterialDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("raw material", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// List retrieves every material ordered by name.
func (r *GormMaterialRepository) List(ctx context.Context) ([]*material.RawMaterial, error) {
	var dtos []MaterialDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	materials := make([]*material.RawMaterial, 0, len(dtos))
	for _, dto := range dtos {
		m, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}

	return materials, nil
}

// AddSupplier saves supplier master data.
func (r *GormMaterialRepository) AddSupplier(ctx context.Context, supplier *material.Supplier) error {
	if supplier == nil {
		return errs.NewValueIsRequiredError("supplier")
	}

	dto := supplierFromDomain(supplier)
	return r.db.WithContext(ctx).Create(&dto).Error
}
