package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
)

const publishTimeout = 5 * time.Second

var validate = validator.New()

// publish runs after commit. A failed publish is logged and never undoes the
// request. The producer only queues the message; the timeout bounds its
// metadata lookup.
func publish(ctx context.Context, p mykafka.Publisher, topic, key, typ string, data any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, mykafka.NewEvent(typ, data)); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", typ, "error", err)
	}
}
