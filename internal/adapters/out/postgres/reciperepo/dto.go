// Package reciperepo persists products and their bill of materials.
package reciperepo

import (
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/recipe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// RecipeDTO is one BOM row. LABOR rows carry no raw material.
type RecipeDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID   *uuid.UUID      `gorm:"type:uuid;index"`
	Type            string          `gorm:"type:varchar(16);not null"`
	QuantityPerUnit decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Unit            string          `gorm:"type:varchar(32)"`
	OptionKey       string          `gorm:"type:varchar(64)"`
}

func (RecipeDTO) TableName() string {
	return "recipes"
}

func productFromDomain(p *recipe.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID().Bytes(),
		Name:          p.Name(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
	}
}

func productToDomain(dto ProductDTO) (*recipe.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return recipe.NewProduct(id, dto.Name, dto.Price, dto.StockQuantity)
}

func recipeFromDomain(r *recipe.Recipe) RecipeDTO {
	var materialID *uuid.UUID
	if id := r.RawMaterialID(); id != nil {
		raw := id.Bytes()
		materialID = &raw
	}

	return RecipeDTO{
		ID:              r.ID().Bytes(),
		ProductID:       r.ProductID().Bytes(),
		RawMaterialID:   materialID,
		Type:            string(r.Type()),
		QuantityPerUnit: r.QuantityPerUnit(),
		Unit:            r.Unit(),
		OptionKey:       r.OptionKey(),
	}
}

func recipeToDomain(dto RecipeDTO) (*recipe.Recipe, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	typ, err := recipe.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	var materialID *kernel.UUID
	if dto.RawMaterialID != nil {
		mID, materialErr := kernel.UUIDFromGoogle(*dto.RawMaterialID)
		if materialErr != nil {
			return nil, materialErr
		}
		materialID = &mID
	}

	return recipe.NewRecipe(id, productID, materialID, typ, dto.QuantityPerUnit, dto.Unit, dto.OptionKey)
}
