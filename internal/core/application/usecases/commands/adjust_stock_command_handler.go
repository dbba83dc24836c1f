package commands

import (
	"context"
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// StockBookingHandler handles manual adjustments and supplier receipts. Both
// are a single ledger booking in their own transaction.
type StockBookingHandler struct {
	uowFactory StockUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewStockBookingHandler(uowFactory StockUoWFactory, publisher ports.EventPublisher) StockBookingHandler {
	return StockBookingHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h StockBookingHandler) HandleAdjust(ctx context.Context, cmd AdjustStockCommand) (stockledger.Posting, error) {
	if err := cmd.Validate(); err != nil {
		return stockledger.Posting{}, err
	}
	return h.book(ctx, func(l *stockledger.StockLedger) (stockledger.Posting, error) {
		return l.Adjust(ctx, cmd.MaterialID(), cmd.Delta(), cmd.Reason())
	})
}

func (h StockBookingHandler) HandleReceive(ctx context.Context, cmd ReceiveStockCommand) (stockledger.Posting, error) {
	if err := cmd.Validate(); err != nil {
		return stockledger.Posting{}, err
	}
	return h.book(ctx, func(l *stockledger.StockLedger) (stockledger.Posting, error) {
		return l.Receive(ctx, cmd.MaterialID(), cmd.Quantity(), cmd.Reason())
	})
}

func (h StockBookingHandler) book(
	ctx context.Context, fn func(*stockledger.StockLedger) (stockledger.Posting, error),
) (stockledger.Posting, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return stockledger.Posting{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	posting, err := fn(stockledger.New(uow.LedgerRepository(), false).WithClock(h.now))
	if err != nil {
		log.Error().Err(err).Msg("stock booking failed")
		return stockledger.Posting{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return stockledger.Posting{}, err
	}

	m := posting.Movement
	log.Info().
		Str("material_id", m.RawMaterialID().String()).
		Str("type", string(m.Type())).
		Str("quantity", m.Quantity().String()).
		Str("balance_after", m.BalanceAfter().String()).
		Msg("stock booked")

	publish(ctx, h.publisher, thresholdEvents([]stockledger.Posting{posting}, h.now()))
	return posting, nil
}
