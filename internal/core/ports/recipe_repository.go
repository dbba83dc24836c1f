package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/recipe"
)

type RecipeRepository interface {
	AddProduct(ctx context.Context, product *recipe.Product) error
	GetProduct(ctx context.Context, id kernel.UUID) (*recipe.Product, error)
	AddRecipe(ctx context.Context, r *recipe.Recipe) error

	// ListByProduct returns every BOM row of a product. An empty slice means
	// the product has no recipe.
	ListByProduct(ctx context.Context, productID kernel.UUID) ([]*recipe.Recipe, error)
}
