// Package undolog stores per-order undo stacks in Redis lists so every
// instance of the service shares them.
//
// Each order owns one list, newest entry at the head. Push runs LPUSH and
// LTRIM in one MULTI block, which keeps the list at capacity by dropping the
// oldest entry.
package undolog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/undo"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "backoffice:undo:"

// RedisUndoLog implements ports.UndoLog on Redis lists.
type RedisUndoLog struct {
	rdb      redis.Cmdable
	capacity int
}

// New returns an undo log keeping at most capacity entries per order. A
// capacity below one falls back to undo.DefaultCapacity.
func New(rdb redis.Cmdable, capacity int) *RedisUndoLog {
	if capacity < 1 {
		capacity = undo.DefaultCapacity
	}
	return &RedisUndoLog{rdb: rdb, capacity: capacity}
}

func (l *RedisUndoLog) Push(ctx context.Context, entry undo.Entry) error {
	if err := entry.OrderID.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode undo entry: %w", err)
	}

	key := key(entry.OrderID)
	_, err = l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(l.capacity-1))
		return nil
	})
	return err
}

func (l *RedisUndoLog) Pop(ctx context.Context, orderID kernel.UUID) (undo.Entry, bool, error) {
	data, err := l.rdb.LPop(ctx, key(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return undo.Entry{}, false, nil
	}
	if err != nil {
		return undo.Entry{}, false, err
	}

	var entry undo.Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return undo.Entry{}, false, fmt.Errorf("decode undo entry: %w", err)
	}
	return entry, true, nil
}

// Discard relies on entries encoding to the same bytes they were pushed with.
func (l *RedisUndoLog) Discard(ctx context.Context, entry undo.Entry) (bool, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("encode undo entry: %w", err)
	}

	n, err := l.rdb.LRem(ctx, key(entry.OrderID), 1, data).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisUndoLog) Entries(ctx context.Context, orderID kernel.UUID) ([]undo.Entry, error) {
	raw, err := l.rdb.LRange(ctx, key(orderID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]undo.Entry, 0, len(raw))
	for _, item := range raw {
		var entry undo.Entry
		if err = json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode undo entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func key(orderID kernel.UUID) string {
	return keyPrefix + orderID.String()
}
