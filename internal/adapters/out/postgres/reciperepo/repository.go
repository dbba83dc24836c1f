package reciperepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/recipe"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRecipeRepository implements ports.RecipeRepository using GORM.
type GormRecipeRepository struct {
	db *gorm.DB
}

func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

func (r *GormRecipeRepository) AddProduct(ctx context.Context, product *recipe.Product) error {
	if product == nil {
		return errs.NewValueIsRequiredError("product")
	}

	dto := productFromDomain(product)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormRecipeRepository) GetProduct(ctx context.Context, id kernel.UUID) (*recipe.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return productToDomain(dto)
}

func (r *GormRecipeRepository) AddRecipe(ctx context.Context, row *recipe.Recipe) error {
	if row == nil {
		return errs.NewValueIsRequiredError("recipe")
	}

	dto := recipeFromDomain(row)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByProduct returns the BOM rows of a product in a stable order.
func (r *GormRecipeRepository) ListByProduct(ctx context.Context, productID kernel.UUID) ([]*recipe.Recipe, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecipeDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "product_id = ?", productID.Bytes()).Error; err != nil {
		return nil, err
	}

	rows := make([]*recipe.Recipe, 0, len(dtos))
	for _, dto := range dtos {
		row, err := recipeToDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}
