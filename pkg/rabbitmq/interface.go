package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IRabbitMQ is the broker connection carrying the urgent-case queue.
// Implementations are safe for concurrent use and reconnect on their own.
type IRabbitMQ interface {
	Close()
	IsReady() bool
	IsClosed() bool
	Channel() (IChannel, error)
}

// IChannel declares topology and publishes urgent notifications.
// Implementations are safe for concurrent use.
type IChannel interface {
	ExchangeDeclare(exc ExchangeArgs) error
	QueueDeclare(queue QueueArgs) (amqp.Queue, error)
	QueueBind(queueBind QueueBindArgs) error
	Publish(ctx context.Context, publish PublishArgs) error
	Consume(consume ConsumeArgs) (<-chan amqp.Delivery, error)
	Close() error
	// NotifyReconnect fires on the receiver after the connection recovers.
	NotifyReconnect(receiver chan bool) <-chan bool
}

// NewRabbitMQ dials the broker and returns the connection behind
// IRabbitMQ. With retryWithoutTimeout the dial loop never gives up.
func NewRabbitMQ(url string, retryWithoutTimeout bool) (IRabbitMQ, error) {
	conn := &connectionImpl{
		url:                 url,
		retryWithoutTimeout: retryWithoutTimeout,
	}
	if err := conn.connect(); err != nil {
		return nil, err
	}
	return conn, nil
}
