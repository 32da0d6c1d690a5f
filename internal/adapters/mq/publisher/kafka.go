// Package publisher ships roster events to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/okian/signup/internal/domain/model"
)

const defaultWriteTimeout = 5 * time.Second

// Sentinel errors returned by NewKafkaPublisher.
var (
	ErrNoBrokers = errors.New("kafka publisher needs at least one broker")
	ErrNoTopic   = errors.New("kafka publisher needs a topic")
)

// MessageWriter is the subset of *kafka.Writer the publisher relies on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per roster event, keyed by activity name
// so a single activity's history stays ordered within its partition.
type KafkaPublisher struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
}

// Option configures a KafkaPublisher.
type Option func(*KafkaPublisher)

// WithWriter replaces the underlying writer.
func WithWriter(w MessageWriter) Option {
	return func(p *KafkaPublisher) {
		if w != nil {
			p.writer = w
		}
	}
}

// WithWriteTimeout bounds every Publish call.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.writeTimeout = d
		}
	}
}

// NewKafkaPublisher creates a synchronous publisher for topic.
func NewKafkaPublisher(brokers []string, topic string, opts ...Option) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrNoTopic
	}

	p := &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
		topic:        topic,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Topic returns the destination topic.
func (p *KafkaPublisher) Topic() string {
	return p.topic
}

// Publish writes e as JSON.
func (p *KafkaPublisher) Publish(ctx context.Context, e model.RosterEvent) error { //nolint:gocritic // hugeParam
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode roster event %s: %w", e.EventID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(e.Activity),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "event-kind", Value: []byte(e.Kind)},
			{Key: "event-id", Value: []byte(e.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write roster event %s: %w", e.EventID, err)
	}
	return nil
}

// Close flushes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
