package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/undo"
)

// UndoLog stores the bounded per-order undo stacks. Implementations evict the
// oldest entry once a stack holds its capacity.
type UndoLog interface {
	Push(ctx context.Context, entry undo.Entry) error

	// Pop removes the newest entry of an order. ok is false when the stack is empty.
	Pop(ctx context.Context, orderID kernel.UUID) (entry undo.Entry, ok bool, err error)

	// Discard removes the newest entry equal to entry, wherever it sits in the
	// stack. removed is false when no such entry exists.
	Discard(ctx context.Context, entry undo.Entry) (removed bool, err error)

	// Entries returns an order's entries newest first without removing them.
	Entries(ctx context.Context, orderID kernel.UUID) ([]undo.Entry, error)
}
