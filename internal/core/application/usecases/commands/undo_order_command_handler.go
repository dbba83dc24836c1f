package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/undo"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// UndoOrderCommandHandler pops the newest undo entry of an order and moves the
// order back to the recorded previous status, applying the inverse stock
// effect. Undo bypasses the status graph and never pushes an entry itself.
//
// Failure handling:
//   - empty stack: undo.NothingToUndoError
//   - terminal order: order.InvalidTransitionError, entry kept
//   - entry no longer matches the order: a conflict record is stored, the
//     entry is discarded and conflict.DetectedError is returned
//   - any other failure: entry kept
type UndoOrderCommandHandler struct {
	uowFactory  UoWFactory
	undoLog     ports.UndoLog
	publisher   ports.EventPublisher
	strictStock bool
	now         func() time.Time
}

func NewUndoOrderCommandHandler(
	uowFactory UoWFactory,
	undoLog ports.UndoLog,
	publisher ports.EventPublisher,
	strictStock bool,
) UndoOrderCommandHandler {
	return UndoOrderCommandHandler{
		uowFactory:  uowFactory,
		undoLog:     undoLog,
		publisher:   publisher,
		strictStock: strictStock,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h UndoOrderCommandHandler) Handle(ctx context.Context, cmd UndoOrderCommand) (TransitionResult, error) {
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

	entry, ok, err := h.undoLog.Pop(ctx, o.ID())
	if err != nil {
		return TransitionResult{}, fmt.Errorf("pop undo entry: %w", err)
	}
	if !ok {
		return TransitionResult{}, undo.NewNothingToUndoError(o.ID())
	}

	keepEntry := true
	defer func() {
		if !keepEntry {
			return
		}
		if pushErr := h.undoLog.Push(ctx, entry); pushErr != nil {
			log.Error().Err(pushErr).Str("order_id", o.ID().String()).Msg("undo entry lost after failed undo")
		}
	}()

	now := h.now()
	current := o.Status()
	effect, err := o.Revert(entry.NewStatus, entry.PreviousStatus, entry.StockEffect, now)
	if errors.Is(err, order.ErrStaleRevert) {
		keepEntry = false
		verdict := services.Verdict{
			Diffs: []conflict.FieldDiff{{
				Field:  order.FieldStatus,
				Local:  entry.NewStatus.String(),
				Remote: current.String(),
			}},
			Priority: conflict.PriorityHigh,
		}
		return TransitionResult{}, rejectWithConflict(ctx, uow, conflict.TableOrders, o.ID(), verdict, now)
	}
	if err != nil {
		return TransitionResult{}, err
	}

	reason := fmt.Sprintf("order:%s undo %s", o.ID(), current)
	postings, warnings, err := newStockMover(uow, h.strictStock, h.now).apply(ctx, o, effect, reason, now)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return TransitionResult{}, err
	}
	if err = orders.AddStatusChange(ctx, order.StatusChange{
		OrderID: o.ID(), From: current, To: o.Status(), Actor: cmd.Actor(), Undo: true, ChangedAt: now,
	}); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}
	keepEntry = false

	log.Info().
		Str("order_id", o.ID().String()).
		Str("from", current.String()).
		Str("to", o.Status().String()).
		Str("actor", cmd.Actor()).
		Str("stock_effect", effect.String()).
		Msg("order transition undone")

	events := append(warnings, event.NewOrderStatusChanged(event.OrderStatusChanged{
		OrderID: o.ID(), From: current.String(), To: o.Status().String(), Actor: cmd.Actor(), Undo: true, At: now,
	}))
	publish(ctx, h.publisher, append(events, thresholdEvents(postings, now)...))

	return TransitionResult{Order: o, From: current, Effect: effect, Postings: postings}, nil
}
