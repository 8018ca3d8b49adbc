package kafka

import (
	"context"
	"errors"

	kafka_config "dwellio/pkg/kafka/config"
	"dwellio/pkg/logger"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageHandler processes one delivered message. Returning an error
// triggers redelivery up to the configured retry budget, after which the
// message is dead-lettered (when a DLQ is configured) and committed.
type MessageHandler func(ctx context.Context, msg *Message) error

// Consumer reads a topic within a consumer group and drives a handler.
type Consumer struct {
	reader     *kafkago.Reader
	dlq        *Producer
	handler    MessageHandler
	maxRetries int
	log        *logger.Logger
}

type ConsumerOption func(*Consumer)

func WithConsumerDLQ(dlq *Producer) ConsumerOption {
	return func(c *Consumer) {
		c.dlq = dlq
	}
}

func NewConsumer(cfg *kafka_config.Config, topic, groupID string, handler MessageHandler, log *logger.Logger, opts ...ConsumerOption) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:           cfg.Brokers,
		Topic:             topic,
		GroupID:           groupID,
		StartOffset:       cfg.ConsumerStartOffset,
		MinBytes:          cfg.ConsumerMinBytes,
		MaxBytes:          cfg.ConsumerMaxBytes,
		MaxWait:           cfg.ConsumerMaxWait,
		CommitInterval:    cfg.ConsumerCommitInterval,
		HeartbeatInterval: cfg.ConsumerHeartbeatInterval,
		SessionTimeout:    cfg.ConsumerSessionTimeout,
		RebalanceTimeout:  cfg.ConsumerRebalanceTimeout,
	})

	c := &Consumer{
		reader:     reader,
		handler:    handler,
		maxRetries: cfg.ConsumerMaxRetries,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is cancelled. It returns nil on clean shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		km, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		msg := fromKafka(km)
		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, km); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("Failed to commit message",
				"topic", msg.Topic,
				"event_id", msg.Header(HeaderEventID),
				"error", err.Error(),
			)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg *Message) {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err = c.handler(ctx, msg)
		if err == nil {
			return
		}
		if !ShouldRetry(err) {
			break
		}
		c.log.Warn("Handler failed, retrying",
			"topic", msg.Topic,
			"event_id", msg.Header(HeaderEventID),
			"attempt", attempt+1,
			"error", err.Error(),
		)
	}

	c.log.Error("Handler exhausted retries",
		"topic", msg.Topic,
		"event_id", msg.Header(HeaderEventID),
		"event_type", msg.Header(HeaderEventType),
		"error", err.Error(),
	)

	if c.dlq != nil {
		if dlqErr := c.dlq.Publish(ctx, msg); dlqErr != nil {
			c.log.Error("Failed to dead-letter message",
				"event_id", msg.Header(HeaderEventID),
				"error", dlqErr.Error(),
			)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
