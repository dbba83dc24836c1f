// Package ports defines the contracts between the application core and its
// adapters: repositories bound to a unit of work, the undo log and the event
// publisher.
package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, money, customer, shipping and notes of an
	// existing order. The write only succeeds when the stored version equals
	// aggregate.Version(); otherwise errs.VersionIsInvalidError is returned.
	// On success the aggregate carries the new version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the unit of
	// work ends. Concurrent transitions of the same order queue up here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AddStatusChange appends an audit row for an applied transition or undo.
	AddStatusChange(ctx context.Context, change order.StatusChange) error
}
