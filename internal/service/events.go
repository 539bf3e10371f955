package service

import (
	"context"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/queue"
)

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// publish is best-effort: the write it follows has already committed, so a
// broker failure is logged and otherwise ignored.
func publish(ctx context.Context, p EventPublisher, log logging.Logger, ev queue.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn(ctx, "publish event failed", "type", ev.Type, "event_id", ev.ID, "err", err)
	}
}
