package consumer

import (
	"context"
	"database/sql"

	"github.com/rodgerswisdom/safegal-guardian-alert/config"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/redis"
)

// ConsumerServer is the Kafka consumer orchestrator. It runs the case
// event projector that maintains the spike counters.
type ConsumerServer struct {
	// Core Configuration
	l           log.Logger
	kafkaConfig config.KafkaConfig
	engine      config.EngineConfig

	// Infrastructure clients
	redisClient redis.IRedis
	postgresDB  *sql.DB

	// Monitoring & Notification
	discord discord.IDiscord
}

// Config holds all dependencies for the consumer server.
type Config struct {
	// Core Configuration
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	Engine      config.EngineConfig

	// Infrastructure clients
	RedisClient redis.IRedis
	PostgresDB  *sql.DB

	// Monitoring & Notification
	Discord discord.IDiscord
}

// Run starts the consumer server and blocks until the context is
// cancelled, then shuts the consumers down gracefully.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		return err
	}

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(ctx, consumers)

	srv.l.Info(ctx, "Consumer Server stopped gracefully")
	return nil
}
