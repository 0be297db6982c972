package order

import (
	"context"

	"github.com/gearshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// publishDomainEvents flushes the pending events of an aggregate to the
// event bus. Publish failures are logged and do not fail the use case:
// the state change is already persisted.
func publishDomainEvents(ctx context.Context, bus shared.EventBus, log *zap.Logger, aggregate shared.AggregateRoot) {
	if bus == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := bus.Publish(ctx, event); err != nil {
			log.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}
