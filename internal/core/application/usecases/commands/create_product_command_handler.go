package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/domain/model/recipe"

	"github.com/rs/zerolog/log"
)

type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory}
}

// Handle stores the product and its recipe rows. Every referenced material
// must exist.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*recipe.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.RecipeRepository()
	materials := uow.MaterialRepository()
	if err := catalog.AddProduct(ctx, cmd.Product()); err != nil {
		return nil, err
	}
	for _, r := range cmd.Recipes() {
		if id := r.RawMaterialID(); id != nil {
			if _, err := materials.Get(ctx, *id); err != nil {
				return nil, fmt.Errorf("recipe material: %w", err)
			}
		}
		if err := catalog.AddRecipe(ctx, r); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("product_id", cmd.Product().ID().String()).Int("recipe_rows", len(cmd.Recipes())).Msg("product created")
	return cmd.Product(), nil
}
