package usecase

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/redis"
)

const defaultTrustSealTTL = time.Minute

// Config holds the audit usecase tunables.
type Config struct {
	TrustSealTTL time.Duration
}

type implUseCase struct {
	repo    repository.PostgresRepository
	redis   redis.IRedis
	discord discord.IDiscord
	l       log.Logger
	config  Config
}

// New creates a new audit UseCase implementation. redis and discord may
// be nil; the trust seal is then computed on every call and chain
// violations are only logged.
func New(repo repository.PostgresRepository, rd redis.IRedis, dc discord.IDiscord, l log.Logger, cfg Config) audit.UseCase {
	if cfg.TrustSealTTL <= 0 {
		cfg.TrustSealTTL = defaultTrustSealTTL
	}

	return &implUseCase{
		repo:    repo,
		redis:   rd,
		discord: dc,
		l:       l,
		config:  cfg,
	}
}
