package kafka

import "errors"

var (
	ErrBrokersRequired = errors.New("kafka: at least one broker is required")
	ErrTopicRequired   = errors.New("kafka: topic is required")
	ErrGroupIDRequired = errors.New("kafka: group ID is required")
)

func validateProducerConfig(cfg Config) error {
	if len(cfg.Brokers) == 0 {
		return ErrBrokersRequired
	}
	if cfg.Topic == "" {
		return ErrTopicRequired
	}
	return nil
}

func validateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return ErrBrokersRequired
	}
	if cfg.GroupID == "" {
		return ErrGroupIDRequired
	}
	return nil
}
