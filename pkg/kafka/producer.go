package kafka

import (
	"context"
	"sync"

	kafka_config "dwellio/pkg/kafka/config"
	"dwellio/pkg/logger"

	kafkago "github.com/segmentio/kafka-go"
)

// ProducerMiddleware wraps a publish call, mirroring the HTTP middleware
// chain on the serving side.
type ProducerMiddleware func(next PublishFunc) PublishFunc

type PublishFunc func(ctx context.Context, msg *Message) error

// Producer publishes event messages to a single topic, with an optional
// dead-letter topic for messages the broker keeps rejecting.
type Producer struct {
	writer    *kafkago.Writer
	dlqWriter *kafkago.Writer
	topic     string
	publish   PublishFunc
	log       *logger.Logger

	mu     sync.Mutex
	closed bool
}

type ProducerOption func(*Producer)

func WithDLQ(brokers []string, dlqTopic string) ProducerOption {
	return func(p *Producer) {
		p.dlqWriter = &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    dlqTopic,
			Balancer: &kafkago.Hash{},
		}
	}
}

func WithProducerMiddleware(mws ...ProducerMiddleware) ProducerOption {
	return func(p *Producer) {
		for i := len(mws) - 1; i >= 0; i-- {
			p.publish = mws[i](p.publish)
		}
	}
}

func NewProducer(cfg *kafka_config.Config, topic string, log *logger.Logger, opts ...ProducerOption) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.ProducerRequireAcks),
		Compression:  compressionCodec(cfg.ProducerCompression),
		Async:        cfg.ProducerAsync,
	}

	p := &Producer{
		writer: writer,
		topic:  topic,
		log:    log,
	}
	p.publish = p.writeMessage

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish sends one message through the middleware chain. On broker
// failure the message is diverted to the DLQ when one is configured.
func (p *Producer) Publish(ctx context.Context, msg *Message) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrProducerClosed
	}
	p.mu.Unlock()

	if len(msg.Value) == 0 {
		return ErrEmptyMessage
	}

	err := p.publish(ctx, msg)
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.WriteMessages(ctx, msg.toKafka()); dlqErr == nil {
			p.log.Warn("Message diverted to DLQ",
				"topic", p.topic,
				"event_type", msg.Header(HeaderEventType),
				"publish_error", err.Error(),
			)
			return nil
		}
	}
	return err
}

func (p *Producer) writeMessage(ctx context.Context, msg *Message) error {
	return p.writer.WriteMessages(ctx, msg.toKafka())
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	err := p.writer.Close()
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}

func compressionCodec(name string) kafkago.Compression {
	switch name {
	case "gzip":
		return kafkago.Gzip
	case "snappy":
		return kafkago.Snappy
	case "lz4":
		return kafkago.Lz4
	case "zstd":
		return kafkago.Zstd
	default:
		return 0
	}
}
