package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

// handleCaseEventMessage normalizes the message and delegates to the
// projector; no business logic here.
func (c *Consumer) handleCaseEventMessage(msg *sarama.ConsumerMessage) error {
	ctx := context.Background()

	c.l.Infof(ctx, "cases.delivery.kafka.consumer.handleCaseEventMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	var event model.CaseEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.l.Warnf(ctx, "cases.delivery.kafka.consumer.handleCaseEventMessage: Invalid message format (skipping): %v", err)
		return nil
	}

	if event.CaseID == "" || event.County == "" {
		c.l.Warnf(ctx, "cases.delivery.kafka.consumer.handleCaseEventMessage: Invalid message: missing required fields (skipping)")
		return nil
	}

	if err := c.projector.ProjectCaseCreated(ctx, event); err != nil {
		c.l.Errorf(ctx, "cases.delivery.kafka.consumer.handleCaseEventMessage: projector ProjectCaseCreated failed: %v", err)
		return fmt.Errorf("projector error: %w", err)
	}

	return nil
}
