package consumer

import (
	"context"

	kafkaDelivery "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/delivery/kafka"
)

// ConsumeCaseEvents starts consuming case events for spike projection.
func (c *Consumer) ConsumeCaseEvents(ctx context.Context) error {
	groupID := c.kafkaConfig.ConsumerGroup
	if groupID == "" {
		groupID = kafkaDelivery.ConsumerGroupCaseProjector
	}
	topic := c.kafkaConfig.Topic
	if topic == "" {
		topic = kafkaDelivery.TopicCaseEvents
	}

	group, err := c.createConsumerGroup(groupID)
	if err != nil {
		return err
	}
	c.caseEventsGroup = group

	handler := &caseEventsHandler{
		consumer: c,
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{topic}, handler); err != nil {
					c.l.Errorf(ctx, "Consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", topic)

	return nil
}
