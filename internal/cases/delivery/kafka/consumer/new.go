package consumer

import (
	"fmt"

	"github.com/rodgerswisdom/safegal-guardian-alert/config"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	pkgKafka "github.com/rodgerswisdom/safegal-guardian-alert/pkg/kafka"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

// Config holds the configuration for the case events consumer.
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	Projector   cases.Projector
}

// Consumer manages the Kafka consumer group for the case events topic.
type Consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	projector   cases.Projector

	caseEventsGroup pkgKafka.IConsumer
}

// New creates a new case events consumer.
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Projector == nil {
		return nil, fmt.Errorf("projector is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	return &Consumer{
		l:           cfg.Logger,
		kafkaConfig: cfg.KafkaConfig,
		projector:   cfg.Projector,
	}, nil
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c.caseEventsGroup != nil {
		if err := c.caseEventsGroup.Close(); err != nil {
			return fmt.Errorf("failed to close case events group: %w", err)
		}
	}

	return nil
}

// createConsumerGroup creates a new Kafka consumer group.
func (c *Consumer) createConsumerGroup(groupID string) (pkgKafka.IConsumer, error) {
	consumerConfig := pkgKafka.ConsumerConfig{
		Brokers: c.kafkaConfig.Brokers,
		GroupID: groupID,
	}

	group, err := pkgKafka.NewConsumer(consumerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group %s: %w", groupID, err)
	}

	return group, nil
}
