package consumer

import (
	"context"
	"fmt"
	"time"

	casesConsumer "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/delivery/kafka/consumer"
	casesPostgre "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository/postgre"
	casesUsecase "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/usecase"
)

// domainConsumers holds references to all domain consumers for cleanup.
type domainConsumers struct {
	caseEventsConsumer *casesConsumer.Consumer
}

// setupDomains initializes the projector and its consumer.
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	casesRepo := casesPostgre.New(srv.postgresDB, srv.l)

	projector := casesUsecase.NewProjector(casesRepo, srv.redisClient, srv.discord, srv.l, casesUsecase.ProjectorConfig{
		SpikeThreshold: srv.engine.SpikeThreshold,
		SpikeWindow:    time.Duration(srv.engine.SpikeWindowHours) * time.Hour,
	})

	caseEventsCons, err := casesConsumer.New(casesConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.kafkaConfig,
		Projector:   projector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create case events consumer: %w", err)
	}

	srv.l.Infof(ctx, "Case projector domain initialized")

	return &domainConsumers{
		caseEventsConsumer: caseEventsCons,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines.
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.caseEventsConsumer.ConsumeCaseEvents(ctx); err != nil {
		return fmt.Errorf("failed to start case events consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers.
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.caseEventsConsumer != nil {
		if err := consumers.caseEventsConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing case events consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
