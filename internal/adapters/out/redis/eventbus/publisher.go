// Package eventbus publishes domain events on a Redis Pub/Sub channel.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/event"

	"github.com/redis/go-redis/v9"
)

// Publisher sends each event as one JSON message. Pub/Sub has no buffering;
// subscribers that are not connected miss the message.
type Publisher struct {
	rdb     redis.Cmdable
	channel string
}

func NewPublisher(rdb redis.Cmdable, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

// Publish sends every event and reports all failures together.
func (p *Publisher) Publish(ctx context.Context, events ...event.Event) error {
	var errList []error
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			errList = append(errList, fmt.Errorf("encode %s: %w", e.Name, err))
			continue
		}
		if err = p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
			errList = append(errList, fmt.Errorf("publish %s: %w", e.Name, err))
		}
	}
	return errors.Join(errList...)
}
