package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Standard message headers carried on every published event.
const (
	HeaderEventID       = "event_id"
	HeaderEventType     = "event_type"
	HeaderSource        = "source"
	HeaderCorrelationID = "correlation_id"
	HeaderContentType   = "content_type"
	HeaderTimestamp     = "timestamp"
)

// Event types published on the property events topic.
const (
	EventPropertyCreated = "property.created"
	EventPropertyUpdated = "property.updated"
	EventPropertyDeleted = "property.deleted"
)

// Message is the transport-neutral envelope used by the producer and
// consumer. Key selects the partition; property events key on the
// property id so updates for one listing stay ordered.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
	Topic   string
}

func (m *Message) Header(name string) string {
	return m.Headers[name]
}

func (m *Message) toKafka() kafkago.Message {
	headers := make([]kafkago.Header, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	}
}

func fromKafka(km kafkago.Message) *Message {
	headers := make(map[string]string, len(km.Headers))
	for _, h := range km.Headers {
		headers[h.Key] = string(h.Value)
	}
	return &Message{
		Key:     km.Key,
		Value:   km.Value,
		Headers: headers,
		Topic:   km.Topic,
	}
}

// MessageBuilder assembles an event message with the standard headers
// filled in.
type MessageBuilder struct {
	msg *Message
	err error
}

func NewMessage(eventType, source string) *MessageBuilder {
	return &MessageBuilder{
		msg: &Message{
			Headers: map[string]string{
				HeaderEventID:     uuid.NewString(),
				HeaderEventType:   eventType,
				HeaderSource:      source,
				HeaderContentType: "application/json",
				HeaderTimestamp:   time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
}

func (b *MessageBuilder) WithKey(key string) *MessageBuilder {
	b.msg.Key = []byte(key)
	return b
}

func (b *MessageBuilder) WithCorrelationID(id string) *MessageBuilder {
	b.msg.Headers[HeaderCorrelationID] = id
	return b
}

func (b *MessageBuilder) WithHeader(name, value string) *MessageBuilder {
	b.msg.Headers[name] = value
	return b
}

// WithJSON marshals payload into the message value. A marshal failure is
// deferred to Build so call sites keep the fluent chain.
func (b *MessageBuilder) WithJSON(payload any) *MessageBuilder {
	data, err := json.Marshal(payload)
	if err != nil {
		b.err = err
		return b
	}
	b.msg.Value = data
	return b
}

func (b *MessageBuilder) Build() (*Message, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.msg, nil
}
