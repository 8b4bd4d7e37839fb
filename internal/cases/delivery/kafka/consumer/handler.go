package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type caseEventsHandler struct {
	consumer *Consumer
}

func (h *caseEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *caseEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *caseEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleCaseEventMessage(msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "cases.delivery.kafka.consumer.ConsumeCaseEvents: Failed to process case event: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
