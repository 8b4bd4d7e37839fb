package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/config"
	configKafka "github.com/rodgerswisdom/safegal-guardian-alert/config/kafka"
	configPostgre "github.com/rodgerswisdom/safegal-guardian-alert/config/postgre"
	configRabbit "github.com/rodgerswisdom/safegal-guardian-alert/config/rabbitmq"
	configRedis "github.com/rodgerswisdom/safegal-guardian-alert/config/redis"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/httpserver"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/encrypter"
	pkgJWT "github.com/rodgerswisdom/safegal-guardian-alert/pkg/jwt"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/kafka"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/rabbitmq"
)

// @title       SafeGal Guardian Alert API
// @description Case intake, risk scoring and tamper-evident audit for child protection reports.
// @version     1
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Initialize encrypter
	encrypterInstance := encrypter.New(cfg.Encrypter.Key)

	// 4. Initialize PostgreSQL
	ctx := context.Background()
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 5. Initialize Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	} else {
		logger.Infof(ctx, "Discord webhook initialized successfully")
	}

	// 6. Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 7. Initialize Kafka producer (optional; case events are skipped without it)
	var producer kafka.IProducer
	producer, err = configKafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		logger.Warnf(ctx, "Kafka producer not available (case events disabled): %v", err)
		producer = nil
	} else {
		defer configKafka.DisconnectProducer()
		logger.Infof(ctx, "Kafka producer initialized")
	}

	// 8. Initialize RabbitMQ (optional; urgent notifications are skipped without it)
	var amqpConn rabbitmq.IRabbitMQ
	amqpConn, err = configRabbit.Connect(cfg.RabbitMQ)
	if err != nil {
		logger.Warnf(ctx, "RabbitMQ not available (urgent queue disabled): %v", err)
		amqpConn = nil
	} else {
		defer configRabbit.Disconnect()
		logger.Infof(ctx, "RabbitMQ connection initialized")
	}

	// 9. Initialize JWT manager. Verification only; tokens are issued by
	// the auth service with the same secret and issuer.
	jwtManager := pkgJWT.NewManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.Audience, time.Duration(cfg.JWT.TTL)*time.Second)
	logger.Infof(ctx, "JWT Manager initialized with algorithm: %s", cfg.JWT.Algorithm)

	// 10. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		// Database Configuration
		PostgresDB:  postgresDB,
		RedisClient: redisClient,

		// Messaging Configuration
		Producer: producer,
		RabbitMQ: amqpConn,

		// Authentication & Security Configuration
		Config:     cfg,
		JWTManager: jwtManager,
		Encrypter:  encrypterInstance,

		// Monitoring & Notification Configuration
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
