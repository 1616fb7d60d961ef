package services

import (
	"context"

	"taskboard/internal/domain/event"
	"taskboard/internal/events"
	"taskboard/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// noActor is recorded as createdBy until requests carry an authenticated user.
var noActor = uuid.NullUUID{}

// publishCommitted hands events of a committed transaction to the publisher.
// Failures are logged only; the mutation is already durable.
func publishCommitted(ctx context.Context, p events.Publisher, log *logger.Logger, evts []event.Event) {
	if len(evts) == 0 {
		return
	}
	if err := p.Publish(ctx, evts); err != nil {
		log.WarnCtx(ctx, "failed to publish committed events",
			zap.Int("count", len(evts)),
			zap.String("entity", evts[0].EntityName),
			zap.Error(err),
		)
	}
}
