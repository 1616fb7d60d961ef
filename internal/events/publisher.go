package events

import (
	"context"
	"strings"

	"taskboard/internal/domain/event"
)

// DefaultChannelPrefix is used when no prefix is configured.
const DefaultChannelPrefix = "taskboard:events"

// Publisher fans committed events out to subscribers. It is only called after the
// transaction that recorded the events has committed.
type Publisher interface {
	Publish(ctx context.Context, events []event.Event) error
}

// ChannelFor returns the channel carrying events of one aggregate type,
// e.g. "taskboard:events:task".
func ChannelFor(prefix, entityName string) string {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return prefix + ":" + strings.ToLower(entityName)
}

type NoopPublisher struct{}

func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, []event.Event) error {
	return nil
}
