package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

type eventSource interface {
	PullDomainEvents() []shared.DomainEvent
}

// publishEvents hands the aggregate's pending events to the publisher.
// Failures are logged; the write that raised them has already committed.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, l *zap.Logger, agg eventSource) {
	events := agg.PullDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, l).Warn("Failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}
