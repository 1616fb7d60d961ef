package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/internal/domain/event"
	"taskboard/internal/events"

	"github.com/redis/go-redis/v9"
)

// publishClient is the subset of *redis.Client the publisher needs.
type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// EventPublisher publishes committed events as JSON envelopes, one channel per
// aggregate type.
type EventPublisher struct {
	client publishClient
	prefix string
}

func NewEventPublisher(client publishClient, prefix string) *EventPublisher {
	if prefix == "" {
		prefix = events.DefaultChannelPrefix
	}
	return &EventPublisher{client: client, prefix: prefix}
}

// Publish sends every event and joins the failures; one failed event does not
// stop the rest.
func (p *EventPublisher) Publish(ctx context.Context, evts []event.Event) error {
	var errs []error
	for _, e := range evts {
		env, err := events.NewEnvelope(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		data, err := json.Marshal(env)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal envelope: %w", err))
			continue
		}
		channel := events.ChannelFor(p.prefix, e.EntityName)
		if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish to %s: %w", channel, err))
		}
	}
	return errors.Join(errs...)
}
