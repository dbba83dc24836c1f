package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"

	"github.com/rs/zerolog/log"
)

// UpdateOrderDetailsCommandHandler applies a detail edit unless it conflicts
// with changes made since the caller's snapshot.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	detector   services.ConflictDetector
	now        func() time.Time
}

func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		detector:   services.NewConflictDetector(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderDetailsCommand) (*order.Order, error) {
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

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if verdict := h.detector.Detect(conflict.TableOrders, cmd.Base(), o.Snapshot(), cmd.Changes()); verdict.HasConflict() {
		return nil, rejectWithConflict(ctx, uow, conflict.TableOrders, o.ID(), verdict, now)
	}

	if err = o.UpdateDetails(cmd.Changes(), now); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", o.ID().String()).Str("actor", cmd.Actor()).Int64("version", o.Version()).Msg("order details updated")
	return o, nil
}
