package commands

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/recipe"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// RecipeInput is one BOM row of a new product.
type RecipeInput struct {
	RawMaterialID   *kernel.UUID
	Type            recipe.Type
	QuantityPerUnit decimal.Decimal
	Unit            string
	OptionKey       string
}

// CreateProductCommand registers a product together with its bill of materials.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	product *recipe.Product
	recipes []*recipe.Recipe

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID, name string, price decimal.Decimal, stockQuantity int, rows []RecipeInput,
) (CreateProductCommand, error) {
	product, err := recipe.NewProduct(productID, name, price, stockQuantity)
	if err != nil {
		return CreateProductCommand{}, err
	}

	recipes := make([]*recipe.Recipe, 0, len(rows))
	var errList []error
	for i, row := range rows {
		r, err := recipe.NewRecipe(kernel.NewUUID(), productID, row.RawMaterialID, row.Type,
			row.QuantityPerUnit, row.Unit, row.OptionKey)
		if err != nil {
			errList = append(errList, fmt.Errorf("recipe row %d: %w", i, err))
			continue
		}
		recipes = append(recipes, r)
	}
	if err = errors.Join(errList...); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{product: product, recipes: recipes, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Product() *recipe.Product { return c.product }
func (c CreateProductCommand) Recipes() []*recipe.Recipe {
	return append([]*recipe.Recipe(nil), c.recipes...)
}
