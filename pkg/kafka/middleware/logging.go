package kafka_middleware

import (
	"context"
	"time"

	"dwellio/pkg/kafka"
	"dwellio/pkg/logger"
)

// PublishLogging logs every publish with its outcome and latency.
func PublishLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(next kafka.PublishFunc) kafka.PublishFunc {
		return func(ctx context.Context, msg *kafka.Message) error {
			start := time.Now()
			err := next(ctx, msg)
			fields := []any{
				"event_id", msg.Header(kafka.HeaderEventID),
				"event_type", msg.Header(kafka.HeaderEventType),
				"key", string(msg.Key),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				log.Error("Publish failed", append(fields, "error", err.Error())...)
				return err
			}
			log.Info("Event published", fields...)
			return nil
		}
	}
}
