package ports

import (
	"context"

	"backoffice/internal/core/domain/model/event"
)

// EventPublisher delivers events after a unit of work has committed.
// Delivery is best effort; callers log failures and move on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event) error
}
