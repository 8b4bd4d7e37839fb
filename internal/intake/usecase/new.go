package usecase

import (
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	casesrepo "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/kafka"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/rabbitmq"
)

const defaultUrgentScore = 80

// Config holds the intake tunables and messaging targets.
type Config struct {
	UrgentScore      int
	RabbitExchange   string
	RabbitRoutingKey string
}

type implUseCase struct {
	repo      casesrepo.PostgresRepository
	auditUC   audit.UseCase
	ratelimit ratelimit.UseCase
	producer  kafka.IProducer
	rabbitCh  rabbitmq.IChannel
	l         log.Logger
	config    Config
}

// New creates a new intake UseCase implementation. producer and
// rabbitCh may be nil; post-commit publication is then skipped.
func New(
	repo casesrepo.PostgresRepository,
	auditUC audit.UseCase,
	rlUC ratelimit.UseCase,
	producer kafka.IProducer,
	rabbitCh rabbitmq.IChannel,
	l log.Logger,
	cfg Config,
) intake.UseCase {
	if cfg.UrgentScore <= 0 {
		cfg.UrgentScore = defaultUrgentScore
	}

	return &implUseCase{
		repo:      repo,
		auditUC:   auditUC,
		ratelimit: rlUC,
		producer:  producer,
		rabbitCh:  rabbitCh,
		l:         l,
		config:    cfg,
	}
}
