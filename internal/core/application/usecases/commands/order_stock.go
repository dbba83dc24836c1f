package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// stockMover applies an order's stock effect through the ledger. All bookings
// run in the caller's transaction, so a failure part way leaves nothing behind
// once the caller rolls back.
type stockMover struct {
	recipes  ports.RecipeRepository
	stock    *stockledger.StockLedger
	resolver services.BOMResolver
}

func newStockMover(uow UoW, strict bool, now func() time.Time) stockMover {
	return stockMover{
		recipes:  uow.RecipeRepository(),
		stock:    stockledger.New(uow.LedgerRepository(), strict).WithClock(now),
		resolver: services.NewBOMResolver(),
	}
}

// apply books the effect for every item of o. Items whose product has no
// recipe are skipped with a bom.recipe_missing warning event.
func (m stockMover) apply(
	ctx context.Context, o *order.Order, effect order.StockEffect, reason string, at time.Time,
) ([]stockledger.Posting, []event.Event, error) {
	if effect == order.EffectNone {
		return nil, nil, nil
	}

	var (
		lists    [][]services.Requirement
		warnings []event.Event
	)
	for _, item := range o.Items() {
		recipes, err := m.recipes.ListByProduct(ctx, item.ProductID())
		if err != nil {
			return nil, nil, fmt.Errorf("load recipe of product %s: %w", item.ProductID(), err)
		}

		reqs, err := m.resolver.Explode(item.ProductID(), recipes, item.Quantity(), item.Personalization())
		if errors.Is(err, services.ErrInsufficientData) {
			log.Warn().
				Str("order_id", o.ID().String()).
				Str("product_id", item.ProductID().String()).
				Msg("product has no recipe, stock not moved")
			warnings = append(warnings, event.NewRecipeMissing(event.RecipeMissing{
				OrderID:   o.ID(),
				ProductID: item.ProductID(),
			}, at))
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		lists = append(lists, reqs)
	}

	orderID := o.ID()
	postings := make([]stockledger.Posting, 0)
	for _, req := range m.resolver.Merge(lists...) {
		var (
			posting stockledger.Posting
			err     error
		)
		switch effect {
		case order.EffectDeduct:
			posting, err = m.stock.Deduct(ctx, req.MaterialID, req.Quantity, reason, &orderID)
		case order.EffectRestore:
			posting, err = m.stock.Restore(ctx, req.MaterialID, req.Quantity, reason, &orderID)
		case order.EffectNone:
			continue
		}
		if err != nil {
			log.Error().Err(err).
				Str("order_id", orderID.String()).
				Str("material_id", req.MaterialID.String()).
				Str("effect", effect.String()).
				Msg("ledger booking failed, transition aborted")
			return nil, nil, err
		}
		postings = append(postings, posting)
	}
	return postings, warnings, nil
}
