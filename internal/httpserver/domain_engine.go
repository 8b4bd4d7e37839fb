package httpserver

import (
	"context"
	"time"

	auditHTTP "github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/delivery/http"
	auditPostgre "github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/repository/postgre"
	auditUsecase "github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/usecase"
	casesHTTP "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/delivery/http"
	casesPostgre "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository/postgre"
	casesUsecase "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/usecase"
	intakeHTTP "github.com/rodgerswisdom/safegal-guardian-alert/internal/intake/delivery/http"
	intakeUsecase "github.com/rodgerswisdom/safegal-guardian-alert/internal/intake/usecase"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/middleware"
	ratelimitHTTP "github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/delivery/http"
	ratelimitPostgre "github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/repository/postgre"
	ratelimitUsecase "github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/usecase"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/rabbitmq"
)

// urgentRoutingKey routes critical-band cases to the urgent queue.
const urgentRoutingKey = "case.urgent"

func (srv *HTTPServer) setupEngineDomains(ctx context.Context, mw middleware.Middleware) error {
	eng := srv.config.Engine

	rlRepo := ratelimitPostgre.New(srv.postgresDB, srv.l)
	rlUC := ratelimitUsecase.New(rlRepo, srv.l, ratelimitUsecase.Config{
		DailyCap:           eng.DailyAlertCap,
		MinInterval:        time.Duration(eng.MinIntervalMinutes) * time.Minute,
		SoftBlockThreshold: eng.SoftBlockThreshold,
		SoftBlockWindow:    time.Duration(eng.SoftBlockWindowDays) * 24 * time.Hour,
	})

	auditRepo := auditPostgre.New(srv.postgresDB, srv.l)
	auditUC := auditUsecase.New(auditRepo, srv.redisClient, srv.discord, srv.l, auditUsecase.Config{})

	casesRepo := casesPostgre.New(srv.postgresDB, srv.l)
	casesUC := casesUsecase.New(casesRepo, auditUC, rlUC, srv.l)

	rabbitCh, err := srv.setupUrgentQueue()
	if err != nil {
		return err
	}

	intakeUC := intakeUsecase.New(casesRepo, auditUC, rlUC, srv.producer, rabbitCh, srv.l, intakeUsecase.Config{
		UrgentScore:      eng.UrgentScore,
		RabbitExchange:   srv.config.RabbitMQ.Exchange,
		RabbitRoutingKey: urgentRoutingKey,
	})

	root := srv.gin.Group("")
	intakeHTTP.New(srv.l, intakeUC, srv.discord).RegisterRoutes(root, mw)
	casesHTTP.New(srv.l, casesUC, srv.discord).RegisterRoutes(root, mw)
	auditHTTP.New(srv.l, auditUC, srv.discord).RegisterRoutes(root, mw)
	ratelimitHTTP.New(srv.l, rlUC, srv.discord).RegisterRoutes(root, mw)

	srv.l.Infof(ctx, "Engine domains (RateLimit, Audit, Cases, Intake) registered")
	return nil
}

// setupUrgentQueue declares the urgent notification topology and returns
// a publishing channel, or nil when no broker is configured.
func (srv *HTTPServer) setupUrgentQueue() (rabbitmq.IChannel, error) {
	if srv.amqpConn == nil {
		return nil, nil
	}

	ch, err := srv.amqpConn.Channel()
	if err != nil {
		return nil, err
	}

	if err := ch.ExchangeDeclare(rabbitmq.ExchangeArgs{
		Name:    srv.config.RabbitMQ.Exchange,
		Type:    "direct",
		Durable: true,
	}); err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(rabbitmq.QueueArgs{
		Name:    srv.config.RabbitMQ.UrgentQueue,
		Durable: true,
	}); err != nil {
		return nil, err
	}

	if err := ch.QueueBind(rabbitmq.QueueBindArgs{
		Queue:      srv.config.RabbitMQ.UrgentQueue,
		Exchange:   srv.config.RabbitMQ.Exchange,
		RoutingKey: urgentRoutingKey,
	}); err != nil {
		return nil, err
	}

	return ch, nil
}
