package restaurant

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/restaurants/internal/cache"
	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/messaging"
	restaurantsvc "github.com/Additional-Code/restaurants/internal/service/restaurant"
	"github.com/Additional-Code/restaurants/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/restaurants/worker/restaurant")

// Module registers restaurant-related worker handlers.
var Module = fx.Module("worker_restaurant",
	fx.Provide(
		fx.Annotate(
			NewEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewEventHandler consumes restaurant change events. Every event evicts the
// cached copy so other instances stop serving stale records.
func NewEventHandler(logger *zap.Logger, cfg config.Config, store cache.Store) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.restaurants.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
			attribute.String("event.type", msg.Headers[restaurantsvc.EventTypeHeader]),
		))
		defer span.End()

		var event restaurantsvc.RestaurantEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode restaurant event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		if store != nil {
			if err := store.Delete(ctx, restaurantsvc.CacheKey(event.ID)); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "cache evict failed")
				return err
			}
		}

		logger.Info("restaurant event processed",
			zap.String("type", string(event.Type)),
			zap.Int64("id", event.ID),
			zap.Any("restaurant", event.Restaurant),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
