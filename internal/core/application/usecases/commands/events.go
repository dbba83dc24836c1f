package commands

import (
	"context"
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// publish delivers events after commit. Failures are logged, never returned.
func publish(ctx context.Context, publisher ports.EventPublisher, events []event.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		log.Warn().Err(err).Int("events", len(events)).Msg("event publish failed")
	}
}

// thresholdEvents emits stock.below_threshold for every touched material whose
// final balance is not NORMAL.
func thresholdEvents(postings []stockledger.Posting, at time.Time) []event.Event {
	advisor := services.NewStockAdvisor()
	latest := make(map[string]stockledger.Posting, len(postings))
	order := make([]string, 0, len(postings))
	for _, p := range postings {
		key := p.Material.ID().String()
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = p
	}

	var out []event.Event
	for _, key := range order {
		m := latest[key].Material
		a := advisor.Assess(m)
		if !a.Level.NeedsAttention() {
			continue
		}
		out = append(out, event.NewStockBelowThreshold(event.StockBelowThreshold{
			MaterialID:       m.ID(),
			Level:            a.Level.String(),
			Stock:            m.StockQuantity(),
			Min:              m.MinStock(),
			SuggestedReorder: a.SuggestedReorder,
		}, at))
	}
	return out
}
