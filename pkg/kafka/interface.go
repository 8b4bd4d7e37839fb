package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// IProducer publishes case lifecycle events to the configured topic.
// Implementations are safe for concurrent use.
type IProducer interface {
	// Publish sends one message keyed for partition affinity; events for
	// the same case land on the same partition.
	Publish(key, value []byte) error
	Close() error
	HealthCheck() error
}

// IConsumer wraps a sarama.ConsumerGroup so the projector can be
// driven by a fake in tests.
type IConsumer interface {
	// Consume starts consuming from topics with a background context.
	Consume(topics []string, handler sarama.ConsumerGroupHandler) error
	// ConsumeWithContext blocks until the context is cancelled,
	// rejoining the group across rebalances.
	ConsumeWithContext(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Close() error
	// Errors surfaces consumer-group errors for logging.
	Errors() <-chan error
}

// NewProducer creates a sync producer behind IProducer.
func NewProducer(cfg Config) (IProducer, error) {
	if err := validateProducerConfig(cfg); err != nil {
		return nil, err
	}
	return newProducerImpl(cfg)
}

// NewConsumer creates a consumer group behind IConsumer.
func NewConsumer(cfg ConsumerConfig) (IConsumer, error) {
	if err := validateConsumerConfig(cfg); err != nil {
		return nil, err
	}
	return newConsumerImpl(cfg)
}
