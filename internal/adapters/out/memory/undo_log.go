// Package memory holds in-process adapters for single-replica deployments.
package memory

import (
	"context"
	"sync"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/undo"
)

// UndoLog keeps one bounded undo.Stack per order. Stacks are created lazily
// and live for the lifetime of the process.
type UndoLog struct {
	mu       sync.Mutex
	capacity int
	stacks   map[kernel.UUID]*undo.Stack
}

// NewUndoLog returns an empty arena. A non-positive capacity falls back to
// undo.DefaultCapacity.
func NewUndoLog(capacity int) *UndoLog {
	if capacity <= 0 {
		capacity = undo.DefaultCapacity
	}
	return &UndoLog{
		capacity: capacity,
		stacks:   make(map[kernel.UUID]*undo.Stack),
	}
}

func (l *UndoLog) Push(_ context.Context, entry undo.Entry) error {
	if err := entry.OrderID.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stack, ok := l.stacks[entry.OrderID]
	if !ok {
		stack = undo.NewStack(l.capacity)
		l.stacks[entry.OrderID] = stack
	}
	stack.Push(entry)
	return nil
}

func (l *UndoLog) Pop(_ context.Context, orderID kernel.UUID) (undo.Entry, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stack, ok := l.stacks[orderID]
	if !ok {
		return undo.Entry{}, false, nil
	}
	entry, ok := stack.Pop()
	if stack.Len() == 0 {
		delete(l.stacks, orderID)
	}
	return entry, ok, nil
}

func (l *UndoLog) Discard(_ context.Context, entry undo.Entry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stack, ok := l.stacks[entry.OrderID]
	if !ok {
		return false, nil
	}
	removed := stack.Remove(entry)
	if stack.Len() == 0 {
		delete(l.stacks, entry.OrderID)
	}
	return removed, nil
}

func (l *UndoLog) Entries(_ context.Context, orderID kernel.UUID) ([]undo.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stack, ok := l.stacks[orderID]
	if !ok {
		return []undo.Entry{}, nil
	}
	return stack.Entries(), nil
}
