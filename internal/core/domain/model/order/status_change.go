package order

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
)

// StatusChange is an audit record of one applied transition or undo.
type StatusChange struct {
	OrderID   kernel.UUID
	From      Status
	To        Status
	Actor     string
	Undo      bool
	ChangedAt time.Time
}
