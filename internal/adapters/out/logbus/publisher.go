// Package logbus publishes domain events to the structured log, and fans
// events out to several publishers.
package logbus

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/ports"

	"github.com/rs/zerolog"
)

// Publisher writes one log line per event.
type Publisher struct {
	logger zerolog.Logger
}

func NewPublisher(logger zerolog.Logger) *Publisher {
	return &Publisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *Publisher) Publish(_ context.Context, events ...event.Event) error {
	for _, e := range events {
		entry := p.logger.Info()
		if e.Name == event.NameRecipeMissing {
			entry = p.logger.Warn()
		}
		entry.Str("event", e.Name).
			Str("key", e.Key).
			Time("occurred_at", e.OccurredAt).
			Interface("payload", e.Payload).
			Msg("domain event")
	}
	return nil
}

// FanOut delivers every event to each publisher in turn. A failing publisher
// does not stop the others.
type FanOut struct {
	publishers []ports.EventPublisher
}

func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
