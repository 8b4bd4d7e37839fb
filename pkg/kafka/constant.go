package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const (
	// ProducerTimeout bounds a single publish of a case event.
	ProducerTimeout = 10 * time.Second
	// ProducerRetryMax is how many times a publish is retried before the
	// caller sees the error.
	ProducerRetryMax = 3
)

var (
	// KafkaVersion is the broker protocol version sarama negotiates.
	KafkaVersion = sarama.V2_6_0_0
)
