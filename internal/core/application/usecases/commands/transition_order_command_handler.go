package commands

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/undo"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// TransitionResult describes an applied transition.
type TransitionResult struct {
	Order    *order.Order
	From     order.Status
	Effect   order.StockEffect
	Postings []stockledger.Posting
}

// TransitionOrderCommandHandler moves an order along the status graph and
// books the resulting stock movements.
//
// Within one transaction it locks the order row, optionally checks the
// caller's base snapshot, applies the transition, books stock, persists the
// order with an audit row and pushes an undo entry. Events go out after commit.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, undoLog, publisher, false)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // not an edge of the status graph, nothing changed
//	case errors.Is(err, conflict.ErrConflictDetected):
//	    // another writer moved the order since the caller read it
//	}
type TransitionOrderCommandHandler struct {
	uowFactory  UoWFactory
	undoLog     ports.UndoLog
	publisher   ports.EventPublisher
	detector    services.ConflictDetector
	strictStock bool
	now         func() time.Time
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	undoLog ports.UndoLog,
	publisher ports.EventPublisher,
	strictStock bool,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		undoLog:     undoLog,
		publisher:   publisher,
		detector:    services.NewConflictDetector(),
		strictStock: strictStock,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	now := h.now()
	if base := cmd.Base(); base != nil {
		changes := map[string]string{order.FieldStatus: cmd.Target().String()}
		if verdict := h.detector.Detect(conflict.TableOrders, *base, o.Snapshot(), changes); verdict.HasConflict() {
			return TransitionResult{}, rejectWithConflict(ctx, uow, conflict.TableOrders, o.ID(), verdict, now)
		}
	}

	from := o.Status()
	effect, err := o.Transition(cmd.Target(), now)
	if err != nil {
		return TransitionResult{}, err
	}

	reason := fmt.Sprintf("order:%s %s", o.ID(), cmd.Target())
	if effect == order.EffectDeduct {
		reason = fmt.Sprintf("order:%s confirm", o.ID())
	}
	postings, warnings, err := newStockMover(uow, h.strictStock, h.now).apply(ctx, o, effect, reason, now)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return TransitionResult{}, err
	}
	if err = orders.AddStatusChange(ctx, order.StatusChange{
		OrderID: o.ID(), From: from, To: o.Status(), Actor: cmd.Actor(), ChangedAt: now,
	}); err != nil {
		return TransitionResult{}, err
	}

	entry := undo.Entry{OrderID: o.ID(), PreviousStatus: from, NewStatus: o.Status(), StockEffect: effect, At: now}
	if err = h.undoLog.Push(ctx, entry); err != nil {
		return TransitionResult{}, fmt.Errorf("push undo entry: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		if _, discardErr := h.undoLog.Discard(ctx, entry); discardErr != nil {
			log.Error().Err(discardErr).Str("order_id", o.ID().String()).Msg("undo entry of failed commit not removed")
		}
		return TransitionResult{}, err
	}

	log.Info().
		Str("order_id", o.ID().String()).
		Str("from", from.String()).
		Str("to", o.Status().String()).
		Str("actor", cmd.Actor()).
		Str("stock_effect", effect.String()).
		Int("movements", len(postings)).
		Msg("order transitioned")

	events := append(warnings, event.NewOrderStatusChanged(event.OrderStatusChanged{
		OrderID: o.ID(), From: from.String(), To: o.Status().String(), Actor: cmd.Actor(), At: now,
	}))
	publish(ctx, h.publisher, append(events, thresholdEvents(postings, now)...))

	return TransitionResult{Order: o, From: from, Effect: effect, Postings: postings}, nil
}
