package services

import (
	"errors"
	"fmt"
	"sort"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/recipe"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInsufficientData is the sentinel behind InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient recipe data")

// InsufficientDataError reports a product with no recipe rows. Callers treat it
// as a warning and skip the product.
type InsufficientDataError struct {
	ProductID kernel.UUID
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: product %s has no recipe", ErrInsufficientData, e.ProductID)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// Requirement is the total quantity of one raw material an item consumes.
type Requirement struct {
	MaterialID kernel.UUID
	Quantity   decimal.Decimal
}

// BOMResolver turns an ordered quantity of a product into raw material
// requirements.
//
// Rules:
//   - only MATERIAL rows count, LABOR rows are skipped
//   - rows without an option key always apply
//   - rows with an option key apply when personalization has that key
//   - rows for the same material are summed
//
// Example:
//
//	reqs, err := services.BOMResolver{}.Explode(productID, recipes, 3, item.Personalization())
//	if errors.Is(err, services.ErrInsufficientData) {
//	    // no recipe, nothing to deduct
//	}
type BOMResolver struct{}

func NewBOMResolver() BOMResolver {
	return BOMResolver{}
}

// Explode returns the requirements sorted by material id.
func (BOMResolver) Explode(
	productID kernel.UUID,
	recipes []*recipe.Recipe,
	quantity int,
	personalization map[string]any,
) ([]Requirement, error) {
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if len(recipes) == 0 {
		return nil, &InsufficientDataError{ProductID: productID}
	}

	qty := decimal.NewFromInt(int64(quantity))
	totals := make(map[kernel.UUID]decimal.Decimal)
	for _, r := range recipes {
		if r.Type() != recipe.TypeMaterial || r.RawMaterialID() == nil {
			continue
		}
		if r.IsOptional() {
			if _, ok := personalization[r.OptionKey()]; !ok {
				continue
			}
		}
		id := *r.RawMaterialID()
		totals[id] = totals[id].Add(r.QuantityPerUnit().Mul(qty))
	}

	return sortedRequirements(totals), nil
}

// Merge sums requirement lists of several items into one list sorted by
// material id.
func (BOMResolver) Merge(lists ...[]Requirement) []Requirement {
	totals := make(map[kernel.UUID]decimal.Decimal)
	for _, list := range lists {
		for _, r := range list {
			totals[r.MaterialID] = totals[r.MaterialID].Add(r.Quantity)
		}
	}
	return sortedRequirements(totals)
}

func sortedRequirements(totals map[kernel.UUID]decimal.Decimal) []Requirement {
	out := make([]Requirement, 0, len(totals))
	for id, q := range totals {
		out = append(out, Requirement{MaterialID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID.Less(out[j].MaterialID) })
	return out
}
